package ptyproc

import (
	"os/exec"
	"testing"
	"time"
)

func TestNonBlockingReadTimesOutWithoutData(t *testing.T) {
	cmd := exec.Command("sleep", "1")
	p, err := Spawn(cmd, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	stream := p.OpenStream()
	stream.SetNonBlocking(true)
	stream.SetPollWindow(20 * time.Millisecond)

	buf := make([]byte, 64)
	_, err = stream.Read(buf)
	if err != ErrWouldBlock {
		t.Fatalf("got err=%v, want ErrWouldBlock", err)
	}
}

func TestNonBlockingReadReturnsDataWhenAvailable(t *testing.T) {
	cmd := exec.Command("echo", "ready")
	p, err := Spawn(cmd, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	stream := p.OpenStream()
	stream.SetNonBlocking(true)
	stream.SetPollWindow(200 * time.Millisecond)

	// give the child a moment to write before we poll
	time.Sleep(50 * time.Millisecond)

	buf := make([]byte, 64)
	n, err := stream.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n == 0 {
		t.Fatal("expected some bytes")
	}
}
