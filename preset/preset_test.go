package preset

import (
	"context"
	"testing"
	"time"

	"github.com/trybotster/expectpty/expect"
)

func TestSpawnBashRunsEcho(t *testing.T) {
	s, err := SpawnBash()
	if err != nil {
		t.Fatalf("SpawnBash: %v", err)
	}
	defer s.Close()

	if _, err := s.SendLine([]byte("echo hi")); err != nil {
		t.Fatalf("SendLine: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := s.Expect(ctx, BashPrompt); err != nil {
		t.Fatalf("Expect prompt: %v", err)
	}

	if _, err := s.SendControl(expect.EndOfTransmission); err != nil {
		t.Fatalf("SendControl: %v", err)
	}
}

func TestSpawnPythonExecute(t *testing.T) {
	s, err := SpawnPython()
	if err != nil {
		t.Skipf("python3 unavailable: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	out, err := Execute(ctx, s, "print('Hello World')")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected captured output before the next prompt")
	}
}
