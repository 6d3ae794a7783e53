package needle

import "github.com/gobwas/glob"

// Glob matches the leftmost window of the buffer satisfying a shell-glob
// pattern (e.g. "login:*", "[Pp]assword:*"). Unlike Regexp, gobwas/glob
// has no FindIndex primitive, so Glob scans candidate end positions
// itself: for each byte i, it grows a trial end j until the pattern
// either matches buf[i:j] or j exhausts the buffer, checking the
// shortest matching window first so the result stays leftmost-first
// like the other needles.
type Glob struct {
	g glob.Glob
}

// NewGlob compiles pattern into a Glob needle.
func NewGlob(pattern string) (*Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Glob{g: g}, nil
}

// Match implements Needle.
func (gl *Glob) Match(buf []byte, eof bool) (*Match, error) {
	n := len(buf)
	for start := 0; start < n; start++ {
		for end := start; end <= n; end++ {
			if gl.g.Match(string(buf[start:end])) {
				return &Match{Start: start, End: end}, nil
			}
		}
	}
	if n == 0 && gl.g.Match("") {
		return &Match{Start: 0, End: 0}, nil
	}
	return nil, nil
}
