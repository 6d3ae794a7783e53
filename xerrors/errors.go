package xerrors

import (
	"errors"
	"fmt"
)

// Kind classifies the failure modes a Session or its subsystems can
// surface. It mirrors the taxonomy the expect engine and PTY layer
// actually produce, not a generic error-code scheme.
type Kind int

const (
	// KindUnknown is the zero value; it also classifies failures outside
	// the other kinds, such as a cancelled context in Expect or Interact.
	KindUnknown Kind = iota
	// KindExpectTimeout means the deadline elapsed with no match and no EOF.
	KindExpectTimeout
	// KindEOF means the stream reached end-of-file before a non-Eof needle matched.
	KindEOF
	// KindRegexParsing means a Regex needle's pattern failed to compile.
	KindRegexParsing
	// KindIO means a read, write, or ioctl on the underlying stream failed.
	KindIO
	// KindSpawn means starting the child process failed.
	KindSpawn
	// KindWait means the wait(2)-equivalent syscall on the child failed.
	KindWait
)

func (k Kind) String() string {
	switch k {
	case KindExpectTimeout:
		return "ExpectTimeout"
	case KindEOF:
		return "Eof"
	case KindRegexParsing:
		return "RegexParsing"
	case KindIO:
		return "Io"
	case KindSpawn:
		return "Spawn"
	case KindWait:
		return "Wait"
	default:
		return "Unknown"
	}
}

// Error is the classified error type the needle, expect, session and
// sshattach packages return; ptyproc returns its own *PTYError, which
// the session layer wraps in an Error. It always carries enough context to diagnose: the operation that failed,
// the Kind, an optional wrapped cause, and — for Eof — the buffer tail
// the caller was still waiting to match.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "expect", "spawn", "wait".
	Op string
	// Buffer holds the unconsumed bytes at the time of an Eof error.
	Buffer []byte
	// Err is the wrapped underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("expectpty: %s: %s", e.Op, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Kind == KindEOF && len(e.Buffer) > 0 {
		msg += fmt.Sprintf(" (buffer: %q)", e.Buffer)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, expectpty.ErrTimeout) style checks via the
// sentinel values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for errors.Is comparisons against a bare Kind.
var (
	ErrTimeout = &Error{Kind: KindExpectTimeout, Op: "expect"}
	ErrEOF     = &Error{Kind: KindEOF, Op: "expect"}
)

// NewError constructs an *Error for the given kind/operation, wrapping
// cause if non-nil.
func NewError(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// NewEOFError constructs the Eof{buffer} variant spec.md §7 requires so
// callers can inspect the trailing bytes after a failed expect.
func NewEOFError(op string, buffer []byte) *Error {
	buf := make([]byte, len(buffer))
	copy(buf, buffer)
	return &Error{Kind: KindEOF, Op: op, Buffer: buf}
}

// IsTimeout reports whether err is (or wraps) an ExpectTimeout error.
func IsTimeout(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindExpectTimeout
	}
	return false
}

// IsEOF reports whether err is (or wraps) an Eof error.
func IsEOF(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindEOF
	}
	return false
}
