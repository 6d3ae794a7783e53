package ptyproc

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestSpawnEcho(t *testing.T) {
	cmd := exec.Command("echo", "hello world")
	p, err := Spawn(cmd, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	stream := p.OpenStream()
	buf := make([]byte, 4096)
	n, err := stream.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := string(buf[:n]); !strings.Contains(got, "hello world") {
		t.Fatalf("got %q, want to contain %q", got, "hello world")
	}
}

func TestWaitReturnsExitStatus(t *testing.T) {
	cmd := exec.Command("true")
	p, err := Spawn(cmd, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	status, err := p.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if status.Kind != Exited || status.ExitCode != 0 {
		t.Fatalf("got %+v, want Exited(0)", status)
	}
}

func TestTryWaitBeforeExit(t *testing.T) {
	cmd := exec.Command("sleep", "1")
	p, err := Spawn(cmd, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	if _, ok := p.TryWait(); ok {
		t.Fatal("TryWait reported exit immediately after spawn")
	}
	if !p.IsAlive() {
		t.Fatal("IsAlive() = false right after spawn")
	}
}

func TestSetAndGetWindowSize(t *testing.T) {
	cmd := exec.Command("sleep", "1")
	p, err := Spawn(cmd, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	if err := p.SetWindowSize(Winsize{Rows: 40, Cols: 120}); err != nil {
		t.Fatalf("SetWindowSize: %v", err)
	}
	got, err := p.GetWindowSize()
	if err != nil {
		t.Fatalf("GetWindowSize: %v", err)
	}
	if got.Rows != 40 || got.Cols != 120 {
		t.Fatalf("got %+v, want {40 120}", got)
	}
}
