package needle

import "bytes"

// Literal matches the first occurrence of a fixed byte sequence. An
// empty Literal always matches [0,0) without ever reading the stream —
// document this at call sites to avoid an accidental infinite loop in
// code like `for range expect(Literal(""))`.
type Literal []byte

// NewLiteral wraps a string as a Literal needle.
func NewLiteral(s string) Literal { return Literal(s) }

// Match implements Needle.
func (l Literal) Match(buf []byte, eof bool) (*Match, error) {
	if len(l) == 0 {
		return &Match{Start: 0, End: 0}, nil
	}
	i := bytes.Index(buf, l)
	if i < 0 {
		return nil, nil
	}
	return &Match{Start: i, End: i + len(l)}, nil
}
