package expectpty

import "github.com/trybotster/expectpty/xerrors"

// Kind classifies the failure modes a Session or its subsystems surface,
// mirroring spec.md §7's error taxonomy. Defined in the leaf xerrors
// package (and re-exported here) so every internal package — needle,
// ptyproc, expect, session — can construct a classified *Error without
// importing this top-level facade package back, which would cycle.
type Kind = xerrors.Kind

const (
	KindUnknown       = xerrors.KindUnknown
	KindExpectTimeout = xerrors.KindExpectTimeout
	KindEOF           = xerrors.KindEOF
	KindRegexParsing  = xerrors.KindRegexParsing
	KindIO            = xerrors.KindIO
	KindSpawn         = xerrors.KindSpawn
	KindWait          = xerrors.KindWait
)

// Error is the classified error type the needle, expect, session and
// sshattach packages return; ptyproc's *PTYError reaches callers wrapped
// in one.
type Error = xerrors.Error

// NewError constructs an *Error for the given kind/operation, wrapping
// cause if non-nil.
func NewError(kind Kind, op string, cause error) *Error { return xerrors.NewError(kind, op, cause) }

// NewEOFError constructs the Eof{buffer} variant spec.md §7 requires.
func NewEOFError(op string, buffer []byte) *Error { return xerrors.NewEOFError(op, buffer) }

// IsTimeout reports whether err is (or wraps) an ExpectTimeout error.
func IsTimeout(err error) bool { return xerrors.IsTimeout(err) }

// IsEOF reports whether err is (or wraps) an Eof error.
func IsEOF(err error) bool { return xerrors.IsEOF(err) }

// Sentinel errors for errors.Is comparisons.
var (
	ErrTimeout = xerrors.ErrTimeout
	ErrEOF     = xerrors.ErrEOF
)
