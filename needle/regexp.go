package needle

import (
	"regexp"

	"github.com/trybotster/expectpty/xerrors"
)

// Regexp matches the leftmost occurrence of a compiled pattern in the
// raw byte buffer. The buffer need not be valid UTF-8: an invalid byte
// is matched as a single U+FFFD. Valid multi-byte UTF-8 sequences are
// still decoded, so `.` and character classes match them as one rune,
// not byte by byte.
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp compiles pattern. A compilation failure is reported to the
// caller immediately (spec.md §4.A: "Regex compilation errors surface
// as RegexParsing") rather than deferred to the first Match call.
func NewRegexp(pattern string) (*Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, xerrors.NewError(xerrors.KindRegexParsing, "regexp", err)
	}
	return &Regexp{re: re}, nil
}

// MustRegexp is like NewRegexp but panics on a bad pattern; useful for
// package-level REPL prompt needles known to be valid at compile time.
func MustRegexp(pattern string) *Regexp {
	r, err := NewRegexp(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Match implements Needle.
func (r *Regexp) Match(buf []byte, eof bool) (*Match, error) {
	loc := r.re.FindIndex(buf)
	if loc == nil {
		return nil, nil
	}
	return &Match{Start: loc[0], End: loc[1]}, nil
}
