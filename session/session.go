// Package session composes a Process, its stream, and an expect Engine
// into the library's high-level handle: the thing a caller spawns,
// drives with Expect/Send, and eventually waits on or kills.
package session

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/trybotster/expectpty/expect"
	"github.com/trybotster/expectpty/ptyproc"
	"github.com/trybotster/expectpty/xerrors"
)

// GraceShutdownPeriod is how long Close waits for a SIGHUP'd child to
// exit on its own before escalating to SIGKILL, matching spec.md §4.F's
// "SIGHUP then wait with a bounded grace period; forceful kill on
// expiry."
const GraceShutdownPeriod = 3 * time.Second

// Session is the composition of B (Process) + C (Stream) + optionally D
// (LoggedStream) + E (Engine) from spec.md §2. It is not safe for
// concurrent use by multiple goroutines; it may be handed off between
// them.
type Session struct {
	id      uuid.UUID
	process *ptyproc.Process
	stream  ptyproc.Duplex
	engine  *expect.Engine
	logger  *slog.Logger
	closed  bool
}

// ID returns a correlation id stamped onto this session at Spawn time,
// useful for tying log lines from a multi-session program back to a
// specific child.
func (s *Session) ID() uuid.UUID { return s.id }

// Spawn starts command attached to a new PTY and returns a Session
// driving it. This is the shared implementation behind the root
// package's Spawn façade.
func Spawn(cmd *exec.Cmd, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p, err := ptyproc.Spawn(cmd, logger)
	if err != nil {
		return nil, xerrors.NewError(xerrors.KindSpawn, "spawn", err)
	}
	stream := p.OpenStream()
	id := uuid.New()
	logger = logger.With("session_id", id)
	return &Session{
		id:      id,
		process: p,
		stream:  stream,
		engine:  expect.NewEngine(stream, logger),
		logger:  logger,
	}, nil
}

// SetExpectTimeout sets the deadline subsequent Expect calls enforce. A
// nil duration means wait forever.
func (s *Session) SetExpectTimeout(d *time.Duration) { s.engine.SetTimeout(d) }

// WithLog replaces the session's stream with a LoggedStream teeing every
// read/write to sink. The engine's carry-over buffer survives the swap
// untouched (spec.md §4.F).
func (s *Session) WithLog(sink io.Writer) *Session {
	logged := ptyproc.NewLoggedStream(s.stream, sink)
	s.stream = logged
	s.engine = expect.NewEngine(logged, s.logger)
	return s
}

// Stream returns the session's current duplex stream (the raw
// NonBlockingStream, or a LoggedStream if WithLog was called), for
// callers that need to bridge raw bytes without going through the
// expect engine's buffer — e.g. sshattach.
func (s *Session) Stream() ptyproc.Duplex { return s.stream }

// PID returns the child's process ID.
func (s *Session) PID() int { return s.process.PID() }

// IsAlive reports whether the child is still running.
func (s *Session) IsAlive() bool { return s.process.IsAlive() }

// Wait blocks until the child terminates.
func (s *Session) Wait(ctx context.Context) (ptyproc.WaitStatus, error) {
	status, err := s.process.Wait(ctx)
	if err != nil {
		return status, xerrors.NewError(xerrors.KindWait, "wait", err)
	}
	return status, nil
}

// Kill sends SIGKILL to the child immediately.
func (s *Session) Kill() error {
	if err := s.process.Kill(); err != nil {
		return xerrors.NewError(xerrors.KindIO, "kill", err)
	}
	return nil
}

// GetEcho reports whether the PTY slave echoes input.
func (s *Session) GetEcho() (bool, error) {
	on, err := s.process.GetEcho()
	if err != nil {
		return false, xerrors.NewError(xerrors.KindIO, "get_echo", err)
	}
	return on, nil
}

// SetEcho toggles the PTY slave's ECHO termios bit.
func (s *Session) SetEcho(on bool) error {
	if err := s.process.SetEcho(on); err != nil {
		return xerrors.NewError(xerrors.KindIO, "set_echo", err)
	}
	return nil
}

// SetWindowSize resizes the PTY.
func (s *Session) SetWindowSize(ws ptyproc.Winsize) error {
	if err := s.process.SetWindowSize(ws); err != nil {
		return xerrors.NewError(xerrors.KindIO, "set_window_size", err)
	}
	return nil
}

// Close releases the session: it closes the stream, then attempts a
// graceful shutdown of the child (SIGHUP, bounded grace period, then
// SIGKILL on expiry). Safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	_ = s.stream.Close()

	if !s.process.IsAlive() {
		return nil
	}

	if err := s.process.SendSignal(hangupSignal); err != nil {
		s.logger.Warn("sighup failed, killing child", "pid", s.process.PID(), "error", err)
		return s.Kill()
	}

	ctx, cancel := context.WithTimeout(context.Background(), GraceShutdownPeriod)
	defer cancel()
	if _, err := s.process.Wait(ctx); err != nil {
		s.logger.Warn("child did not exit within grace period, killing", "pid", s.process.PID())
		return s.Kill()
	}
	return nil
}
