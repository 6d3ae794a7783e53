// Package expect implements the incremental search loop at the heart of
// this library: consume bytes from a non-blocking stream, apply a
// pluggable needle to a growing buffer, respect a deadline, and carry
// unconsumed bytes forward to the next call.
package expect

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/trybotster/expectpty/needle"
	"github.com/trybotster/expectpty/ptyproc"
	"github.com/trybotster/expectpty/xerrors"
)

// DefaultPollWindow is the non-blocking read window the engine polls
// with while waiting for more bytes, matching the 10ms example in
// spec.md §4.E.
const DefaultPollWindow = ptyproc.PollWindow

// Captures is the result of a successful Expect: the bytes before the
// match, the matched bytes themselves, and the bytes after — carried
// forward as the engine's new buffer. before ++ matched ++ after always
// reconstructs the buffer at match time.
type Captures struct {
	Before  []byte
	Matched []byte
	After   []byte
}

// Engine drives the expect loop over a duplex stream. It is not safe
// for concurrent use; a Session owns exactly one.
type Engine struct {
	stream     ptyproc.Duplex
	buffer     []byte
	eofSeen    bool
	timeout    *time.Duration
	pollWindow time.Duration
	logger     *slog.Logger
}

// NewEngine returns an Engine reading from and writing to stream. A nil
// logger defaults to slog.Default().
func NewEngine(stream ptyproc.Duplex, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{stream: stream, pollWindow: DefaultPollWindow, logger: logger}
}

// SetTimeout sets the deadline Expect enforces. A nil timeout means
// wait forever, matching spec.md §3's expect_timeout semantics.
func (e *Engine) SetTimeout(d *time.Duration) { e.timeout = d }

// SetPollWindow overrides the non-blocking poll window used while
// waiting for more bytes.
func (e *Engine) SetPollWindow(d time.Duration) { e.pollWindow = d }

// Buffer returns the current carry-over buffer, the bytes already read
// from the stream but not yet consumed by a match.
func (e *Engine) Buffer() []byte { return e.buffer }

// Consume removes and returns up to n bytes from the front of the
// carry-over buffer, for callers that want to read already-captured
// bytes without going through a needle (Session.Read).
func (e *Engine) Consume(n int) []byte {
	if n > len(e.buffer) {
		n = len(e.buffer)
	}
	out := append([]byte(nil), e.buffer[:n]...)
	e.buffer = e.buffer[n:]
	return out
}

// EOFSeen reports whether the underlying stream has reported an
// end-of-file condition. Once true it stays true (spec.md §7: "EOF is
// sticky").
func (e *Engine) EOFSeen() bool { return e.eofSeen }

// Expect blocks, reading from the stream as needed, until n matches the
// carry-over buffer, the deadline elapses, or EOF is observed without a
// match. On a successful match the matched bytes and everything before
// them are consumed; the trailing bytes become the new buffer.
func (e *Engine) Expect(ctx context.Context, needleToMatch needle.Needle) (*Captures, error) {
	var deadline time.Time
	hasDeadline := e.timeout != nil
	if hasDeadline {
		deadline = time.Now().Add(*e.timeout)
	}

	for {
		m, err := needleToMatch.Match(e.buffer, e.eofSeen)
		if err != nil {
			return nil, xerrors.NewError(xerrors.KindRegexParsing, "expect", err)
		}
		if m != nil {
			return e.consume(*m), nil
		}
		if e.eofSeen {
			return nil, xerrors.NewEOFError("expect", e.buffer)
		}

		select {
		case <-ctx.Done():
			return nil, xerrors.NewError(xerrors.KindUnknown, "expect", ctx.Err())
		default:
		}

		window := e.pollWindow
		if hasDeadline {
			if remaining := time.Until(deadline); remaining <= 0 {
				return nil, xerrors.NewError(xerrors.KindExpectTimeout, "expect", nil)
			} else if remaining < window {
				window = remaining
			}
		}

		n, data, err := e.pollRead(window)
		switch {
		case err == ptyproc.ErrWouldBlock:
			if hasDeadline && !time.Now().Before(deadline) {
				return nil, xerrors.NewError(xerrors.KindExpectTimeout, "expect", nil)
			}
			continue
		case errors.Is(err, io.EOF):
			e.eofSeen = true
		case err != nil:
			return nil, xerrors.NewError(xerrors.KindIO, "expect", err)
		case n == 0:
			e.eofSeen = true
		default:
			e.buffer = append(e.buffer, data...)
		}
	}
}

// Check is a one-shot, non-blocking probe: it matches needle against the
// current buffer and EOF state without reading the stream. It returns
// (nil, nil) when there is no match yet.
func (e *Engine) Check(n needle.Needle) (*Captures, error) {
	m, err := n.Match(e.buffer, e.eofSeen)
	if err != nil {
		return nil, xerrors.NewError(xerrors.KindRegexParsing, "check", err)
	}
	if m == nil {
		return nil, nil
	}
	return e.consume(*m), nil
}

func (e *Engine) consume(m needle.Match) *Captures {
	c := &Captures{
		Before:  append([]byte(nil), e.buffer[:m.Start]...),
		Matched: append([]byte(nil), e.buffer[m.Start:m.End]...),
		After:   append([]byte(nil), e.buffer[m.End:]...),
	}
	e.buffer = c.After
	return c
}

// pollRead performs one non-blocking read bounded by window, switching
// the stream back to blocking mode before returning.
func (e *Engine) pollRead(window time.Duration) (int, []byte, error) {
	if s, ok := e.stream.(interface{ SetPollWindow(time.Duration) }); ok {
		s.SetPollWindow(window)
	}
	e.stream.SetNonBlocking(true)
	defer e.stream.SetNonBlocking(false)

	buf := make([]byte, 4096)
	n, err := e.stream.Read(buf)
	return n, buf[:n], err
}

// Send writes p to the stream in full, retrying partial writes.
func (e *Engine) Send(p []byte) (int, error) {
	e.stream.SetNonBlocking(false)
	total := 0
	for total < len(p) {
		n, err := e.stream.Write(p[total:])
		total += n
		if err != nil {
			return total, xerrors.NewError(xerrors.KindIO, "send", err)
		}
		if n == 0 {
			return total, xerrors.NewError(xerrors.KindIO, "send", io.ErrShortWrite)
		}
	}
	return total, nil
}

// SendLine writes p followed by the platform line terminator.
func (e *Engine) SendLine(p []byte) (int, error) {
	return e.Send(append(append([]byte(nil), p...), lineTerminator...))
}

// SendControl writes the single byte a symbolic control code maps to.
func (e *Engine) SendControl(c ControlCode) (int, error) {
	return e.Send([]byte{c.Byte()})
}
