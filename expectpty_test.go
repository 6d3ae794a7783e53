package expectpty

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/trybotster/expectpty/needle"
)

func TestSpawnRejectsEmptyCommand(t *testing.T) {
	if _, err := Spawn(""); err == nil {
		t.Fatal("expected an error for an empty command string")
	}
}

func TestSpawnRunsCatRoundTrip(t *testing.T) {
	s, err := Spawn("cat")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer s.Close()

	if _, err := s.SendLine([]byte("Hello World")); err != nil {
		t.Fatalf("SendLine: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	caps, err := s.Expect(ctx, needle.NewLiteral("Hello World"))
	if err != nil {
		t.Fatalf("Expect: %v", err)
	}
	if string(caps.Matched) != "Hello World" {
		t.Fatalf("matched = %q", caps.Matched)
	}
}

func TestSpawnCmdAcceptsCustomExecCmd(t *testing.T) {
	s, err := SpawnCmd(exec.Command("true"))
	if err != nil {
		t.Fatalf("SpawnCmd: %v", err)
	}
	defer s.Close()
}

func TestIsTimeoutAndIsEOFHelpers(t *testing.T) {
	s, err := Spawn("sleep 3")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer s.Close()

	d := 50 * time.Millisecond
	s.SetExpectTimeout(&d)

	_, err = s.Expect(context.Background(), needle.EOF)
	if !IsTimeout(err) {
		t.Fatalf("got %v, want ExpectTimeout", err)
	}
	if IsEOF(err) {
		t.Fatalf("IsEOF(%v) = true, want false for a timeout", err)
	}
}
