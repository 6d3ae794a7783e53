// Package expectpty drives interactive child processes the way a human
// would at a terminal: spawn a program attached to a pseudo-terminal,
// feed it input, and wait for recognizable output patterns before
// proceeding.
//
// Spawn returns a *Session composing a PTY-attached process, a
// non-blocking duplex stream, and an incremental pattern-matching
// engine. See the needle, expect, and session packages for the pieces
// Session is built from; most callers only need this package and
// needle.
package expectpty

import (
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/trybotster/expectpty/session"
)

var errEmptyCommand = errors.New("expectpty: empty command string")

// Session is the library's high-level handle: spawn it, drive it with
// Send/Expect, and eventually Close it.
type Session = session.Session

// Spawn starts command attached to a new pseudo-terminal and returns a
// Session driving it. command is split on whitespace and run through
// exec.LookPath; for arguments containing spaces, quoting, or
// environment/working-directory customization, build an *exec.Cmd
// yourself and use SpawnCmd.
func Spawn(command string) (*Session, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, NewError(KindSpawn, "spawn", errEmptyCommand)
	}
	return SpawnCmd(exec.Command(fields[0], fields[1:]...))
}

// SpawnCmd starts an already-configured *exec.Cmd attached to a new
// pseudo-terminal and returns a Session driving it.
func SpawnCmd(cmd *exec.Cmd) (*Session, error) {
	return session.Spawn(cmd, slog.Default())
}
