package needle

// EOF matches the entire remaining buffer, but only once the stream's
// eof flag is set. It never matches while eof is false, no matter what
// the buffer contains.
type eofNeedle struct{}

// EOF is the singleton Eof needle.
var EOF Needle = eofNeedle{}

// Match implements Needle.
func (eofNeedle) Match(buf []byte, eof bool) (*Match, error) {
	if !eof {
		return nil, nil
	}
	return &Match{Start: 0, End: len(buf)}, nil
}
