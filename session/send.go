package session

import (
	"bytes"
	"context"

	"github.com/trybotster/expectpty/expect"
	"github.com/trybotster/expectpty/needle"
)

// Send writes p to the child verbatim.
func (s *Session) Send(p []byte) (int, error) { return s.engine.Send(p) }

// SendLine writes p followed by the platform line terminator.
func (s *Session) SendLine(p []byte) (int, error) { return s.engine.SendLine(p) }

// SendControl writes the byte a symbolic control code maps to.
func (s *Session) SendControl(c expect.ControlCode) (int, error) { return s.engine.SendControl(c) }

// Expect blocks until n matches the accumulated output, the expect
// timeout elapses, or EOF is seen without a match.
func (s *Session) Expect(ctx context.Context, n needle.Needle) (*expect.Captures, error) {
	return s.engine.Expect(ctx, n)
}

// Check is a non-blocking, one-shot probe of the current buffer.
func (s *Session) Check(n needle.Needle) (*expect.Captures, error) { return s.engine.Check(n) }

// Read blocks until at least one byte is available, then copies up to
// len(buf) bytes of already-captured output into buf, for consuming the
// carry-over buffer left behind by a prior Expect (spec.md §6,
// round-trip scenario 6: expect("Hello") then read 6 bytes of " World").
func (s *Session) Read(ctx context.Context, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if _, err := s.engine.Expect(ctx, needle.NBytes(0)); err != nil {
		return 0, err
	}
	got := s.engine.Consume(len(buf))
	return copy(buf, got), nil
}

// ReadLine blocks until a newline-terminated line is available and
// returns it, including the trailing newline.
func (s *Session) ReadLine(ctx context.Context) (string, error) {
	caps, err := s.engine.Expect(ctx, needle.NewLiteral("\n"))
	if err != nil {
		return "", err
	}
	line := append(append([]byte(nil), caps.Before...), caps.Matched...)
	return string(bytes.TrimSuffix(line, []byte("\r\n"))) + "\n", nil
}
