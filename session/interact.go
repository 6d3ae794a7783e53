package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/trybotster/expectpty/needle"
	"github.com/trybotster/expectpty/ptyproc"
	"github.com/trybotster/expectpty/xerrors"
)

// InteractTick bounds how long the interact loop can go without
// checking for child termination or a caller-requested stop, per
// spec.md §4.G ("poll with a bounded tick (≤100 ms)").
const InteractTick = 50 * time.Millisecond

// DefaultEscape is the byte sequence that ends Interact when typed at
// the host terminal: Ctrl-] (GroupSeparator), spec.md §4.G's default.
const DefaultEscape byte = 0x1D

// Action invokes Callback with the matched bytes whenever the child's
// output satisfies Needle, before the bytes are forwarded to the host.
type Action struct {
	Needle   needle.Needle
	Callback func(matched []byte)
}

// InteractOptions configures Interact. The zero value is the default:
// Ctrl-] escape, no filters, no actions.
type InteractOptions struct {
	// Escape is the single byte that ends the loop when read from the
	// host terminal. Zero means DefaultEscape.
	Escape byte
	// InputFilter transforms host keystrokes before they reach the
	// child; a nil filter forwards bytes unchanged.
	InputFilter func([]byte) []byte
	// OutputFilter transforms child output before it reaches the host
	// terminal; a nil filter forwards bytes unchanged.
	OutputFilter func([]byte) []byte
	// Actions fire when the child's output matches Needle, before the
	// matched bytes are forwarded to the host.
	Actions []Action
}

// Interact transfers control to a live human at the host terminal using
// the default options.
func (s *Session) Interact(ctx context.Context) error {
	return s.InteractWith(ctx, InteractOptions{})
}

// InteractWith bridges the host terminal (stdin/stdout) and the child
// PTY until the child exits, the escape sequence is typed, an I/O error
// occurs, or ctx is cancelled. The host terminal's termios is always
// restored before returning, on every exit path.
func (s *Session) InteractWith(ctx context.Context, opts InteractOptions) error {
	escape := opts.Escape
	if escape == 0 {
		escape = DefaultEscape
	}

	stdinFd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(stdinFd)
	if err != nil {
		return xerrors.NewError(xerrors.KindIO, "interact", err)
	}
	defer term.Restore(stdinFd, oldState)

	wasEcho, echoErr := s.process.GetEcho()
	if echoErr == nil && !wasEcho {
		_ = s.process.SetEcho(true)
		defer s.process.SetEcho(false)
	}

	hostIn := ptyproc.NewHostStream(os.Stdin)
	hostIn.SetPollWindow(InteractTick)
	hostOut := os.Stdout

	s.stream.SetNonBlocking(true)
	defer s.stream.SetNonBlocking(false)

	inBuf := make([]byte, 4096)
	outBuf := make([]byte, 4096)

	for {
		select {
		case <-ctx.Done():
			return xerrors.NewError(xerrors.KindUnknown, "interact", ctx.Err())
		default:
		}

		if !s.process.IsAlive() {
			return nil
		}

		hostIn.SetNonBlocking(true)
		n, err := hostIn.Read(inBuf)
		switch {
		case err == ptyproc.ErrWouldBlock:
		case err != nil:
			return xerrors.NewError(xerrors.KindIO, "interact", err)
		case n > 0:
			if i := bytes.IndexByte(inBuf[:n], escape); i >= 0 {
				if i > 0 {
					if err := s.forwardInput(opts, inBuf[:i]); err != nil {
						return err
					}
				}
				return nil
			}
			if err := s.forwardInput(opts, inBuf[:n]); err != nil {
				return err
			}
			s.stream.SetNonBlocking(true)
		}

		n, err = s.stream.Read(outBuf)
		switch {
		case err == ptyproc.ErrWouldBlock:
		case errors.Is(err, io.EOF), n == 0 && err == nil:
			return nil
		case err != nil:
			return xerrors.NewError(xerrors.KindIO, "interact", err)
		case n > 0:
			chunk := outBuf[:n]
			for _, a := range opts.Actions {
				if m, merr := a.Needle.Match(chunk, false); merr == nil && m != nil {
					a.Callback(chunk[m.Start:m.End])
				}
			}
			if opts.OutputFilter != nil {
				chunk = opts.OutputFilter(chunk)
			}
			if _, werr := hostOut.Write(chunk); werr != nil {
				return xerrors.NewError(xerrors.KindIO, "interact", werr)
			}
		}
	}
}

func (s *Session) forwardInput(opts InteractOptions, p []byte) error {
	if opts.InputFilter != nil {
		p = opts.InputFilter(p)
	}
	if len(p) == 0 {
		return nil
	}
	if _, err := s.engine.Send(p); err != nil {
		return err
	}
	return nil
}
