package preset

import (
	"context"
	"os/exec"
	"time"

	"github.com/trybotster/expectpty/needle"
	"github.com/trybotster/expectpty/session"
)

// PythonPrompt matches the interactive interpreter's primary prompt.
var PythonPrompt = needle.NewLiteral(">>> ")

// PythonContinuationPrompt matches the interpreter's continuation
// prompt, shown while a multi-line statement is still open.
var PythonContinuationPrompt = needle.NewLiteral("... ")

// SpawnPython starts python3 in unbuffered interactive mode and waits
// for the first ">>> " prompt before returning.
func SpawnPython() (*session.Session, error) {
	cmd := exec.Command("python3", "-u", "-i")
	s, err := session.Spawn(cmd, nil)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.Expect(ctx, PythonPrompt); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Execute sends statement and waits for the next primary prompt,
// returning everything the interpreter printed before it — the
// expectrl repl.Execute idiom from original_source/tests/repl.rs.
func Execute(ctx context.Context, s *session.Session, statement string) ([]byte, error) {
	if _, err := s.SendLine([]byte(statement)); err != nil {
		return nil, err
	}
	caps, err := s.Expect(ctx, PythonPrompt)
	if err != nil {
		return nil, err
	}
	return caps.Before, nil
}
