// Package needle provides the pluggable matchers the expect engine
// consults against a growing byte buffer. A Needle is pure and
// idempotent: calling Match twice with identical arguments must return
// identical results, and it must never mutate buf.
package needle

// Match is a half-open byte range [Start, End) within the buffer a
// Needle consulted. It is an immutable value.
type Match struct {
	Start int
	End   int
}

// Len returns the number of bytes the match spans.
func (m Match) Len() int { return m.End - m.Start }

// Needle is any matcher consulted by the expect engine. eof reports
// whether the stream has reached end-of-file; most needles ignore it,
// but a needle that can only commit at end-of-stream (Eof) uses it.
//
// Match returns (nil, nil) to ask the engine to call again once more
// bytes have arrived. It returns a non-nil error only when the needle
// itself is malformed (e.g. an invalid regex) — a needle either
// matches, doesn't yet, or is broken; matching failure against the
// current buffer is never an error.
type Needle interface {
	Match(buf []byte, eof bool) (*Match, error)
}
