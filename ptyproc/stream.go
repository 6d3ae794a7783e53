package ptyproc

import (
	"errors"
	"io"
	"os"
	"sync"
	"syscall"
	"time"
)

// ErrWouldBlock is returned by Read/Write when no data was available (or
// no buffer space) before the current non-blocking window elapsed. It is
// the stand-in for spec.md §4.C's WouldBlock read/write outcome.
var ErrWouldBlock = errors.New("ptyproc: would block")

// deadlineFile is the subset of *os.File that NonBlockingStream needs.
// The PTY master returned by creack/pty satisfies this on every
// supported platform.
type deadlineFile interface {
	io.ReadWriteCloser
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
}

// NonBlockingStream is a duplex byte stream over a PTY master with
// toggleable blocking semantics. The expect engine needs temporary
// non-blocking reads to implement its poll loop; interact needs
// non-blocking on both directions simultaneously.
//
// "Non-blocking" here is emulated with short read/write deadlines rather
// than O_NONBLOCK, since that is what portably works across the PTY
// master handles creack/pty hands back on every platform it supports.
type NonBlockingStream struct {
	f deadlineFile

	mu          sync.Mutex
	nonBlocking bool
	window      time.Duration
}

func newNonBlockingStream(f *os.File) *NonBlockingStream {
	return &NonBlockingStream{f: f, window: PollWindow}
}

// NewHostStream wraps an arbitrary *os.File (typically the host's stdin
// or stdout) as a NonBlockingStream, for the interact loop's side of the
// bridge — the PTY master side is always obtained via Process.OpenStream.
func NewHostStream(f *os.File) *NonBlockingStream {
	return newNonBlockingStream(f)
}

// SetNonBlocking toggles non-blocking mode. Pair every "on" with an
// eventual "off" — the engine and interact loop both do this around
// their respective read/write calls.
func (s *NonBlockingStream) SetNonBlocking(on bool) {
	s.mu.Lock()
	s.nonBlocking = on
	s.mu.Unlock()
}

// SetPollWindow overrides the deadline used while in non-blocking mode.
// Defaults to PollWindow (10ms), matching spec.md §4.E's example.
func (s *NonBlockingStream) SetPollWindow(d time.Duration) {
	s.mu.Lock()
	s.window = d
	s.mu.Unlock()
}

// Read reads into buf. In blocking mode it behaves like a normal
// io.Reader. In non-blocking mode it returns (0, ErrWouldBlock) if no
// data arrives within the configured poll window.
func (s *NonBlockingStream) Read(buf []byte) (int, error) {
	s.mu.Lock()
	nb, window := s.nonBlocking, s.window
	s.mu.Unlock()

	if nb {
		if err := s.f.SetReadDeadline(time.Now().Add(window)); err != nil {
			return 0, err
		}
		defer s.f.SetReadDeadline(time.Time{})
	}

	n, err := s.f.Read(buf)
	if err != nil && nb && isDeadlineExceeded(err) {
		return n, ErrWouldBlock
	}
	if err != nil && isClosedPTYError(err) {
		return n, io.EOF
	}
	return n, err
}

// Write writes buf, retrying partial writes until the whole buffer is
// sent or an error (including ErrWouldBlock in non-blocking mode) occurs.
func (s *NonBlockingStream) Write(buf []byte) (int, error) {
	s.mu.Lock()
	nb, window := s.nonBlocking, s.window
	s.mu.Unlock()

	if nb {
		if err := s.f.SetWriteDeadline(time.Now().Add(window)); err != nil {
			return 0, err
		}
		defer s.f.SetWriteDeadline(time.Time{})
	}

	total := 0
	for total < len(buf) {
		n, err := s.f.Write(buf[total:])
		total += n
		if err != nil {
			if nb && isDeadlineExceeded(err) {
				return total, ErrWouldBlock
			}
			return total, err
		}
	}
	return total, nil
}

// Close closes the underlying master fd.
func (s *NonBlockingStream) Close() error { return s.f.Close() }

func isDeadlineExceeded(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded)
}

// isClosedPTYError reports whether err is one of the PTY-specific ways a
// read surfaces "the child is gone" instead of a clean io.EOF: on Linux,
// the master side returns EIO once the slave has no more writers; a
// stream closed out from under a blocked read reports EBADF. spec.md
// §4.B requires both be treated as EOF by the stream layer.
func isClosedPTYError(err error) bool {
	return errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) || errors.Is(err, os.ErrClosed)
}
