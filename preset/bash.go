// Package preset provides thin REPL convenience wrappers over Spawn,
// configuring prompt-matching needles for common shells — out of the
// core per spec.md §1 ("REPL convenience wrappers ... treated as
// library clients"), grounded on original_source/tests/repl.rs's
// spawn_bash/spawn_python.
package preset

import (
	"context"
	"os/exec"
	"time"

	"github.com/trybotster/expectpty/needle"
	"github.com/trybotster/expectpty/session"
)

// BashPrompt matches a bare bash prompt ending in "$ " or "# " (root).
var BashPrompt = needle.MustRegexp(`[\$#] $`)

// SpawnBash starts bash interactively (no rc files, so the prompt is
// predictable), forces a known prompt string, and waits for the first
// prompt before returning — callers can send commands immediately.
func SpawnBash() (*session.Session, error) {
	cmd := exec.Command("bash", "--norc", "--noprofile")
	s, err := session.Spawn(cmd, nil)
	if err != nil {
		return nil, err
	}

	if _, err := s.SendLine([]byte(`PS1='$ '`)); err != nil {
		s.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.Expect(ctx, BashPrompt); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
