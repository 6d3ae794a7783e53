package session

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/trybotster/expectpty/needle"
)

func TestSpawnSendExpect(t *testing.T) {
	s, err := Spawn(exec.Command("cat"), nil)
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

func TestExpectThenReadCarriesOverRemainingBytes(t *testing.T) {
	s, err := Spawn(exec.Command("cat"), nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer s.Close()

	if _, err := s.SendLine([]byte("Hello World")); err != nil {
		t.Fatalf("SendLine: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := s.Expect(ctx, needle.NewLiteral("Hello")); err != nil {
		t.Fatalf("Expect: %v", err)
	}

	rest := make([]byte, 6)
	n, err := s.Read(ctx, rest)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := string(rest[:n]); got != " World" {
		t.Fatalf("got %q, want %q", got, " World")
	}
}

func TestWithLogTeesOutput(t *testing.T) {
	s, err := Spawn(exec.Command("cat"), nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer s.Close()

	var sink bytes.Buffer
	s.WithLog(&sink)

	if _, err := s.SendLine([]byte("ping")); err != nil {
		t.Fatalf("SendLine: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := s.Expect(ctx, needle.NewLiteral("ping")); err != nil {
		t.Fatalf("Expect: %v", err)
	}

	if sink.Len() == 0 {
		t.Fatal("expected WithLog sink to capture traffic")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := Spawn(exec.Command("sleep", "5"), nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
