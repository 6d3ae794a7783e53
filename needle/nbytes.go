package needle

// NBytes matches the first n bytes of the buffer once the buffer holds
// MORE than n bytes — not merely n. This is a literal preservation of a
// possible bug in the source implementation (spec.md §9's "Open
// question / possible bug"): NBytes(0) needs at least 1 buffered byte
// before it ever matches. Do not change len(buf) > n to >= without a
// confirmed user request; the NBytes tests in needle_test.go and
// Session.Read (which waits with NBytes(0) for one byte) rely on the
// off-by-one as written.
type NBytes int

// Match implements Needle.
func (n NBytes) Match(buf []byte, eof bool) (*Match, error) {
	if len(buf) > int(n) {
		return &Match{Start: 0, End: int(n)}, nil
	}
	return nil, nil
}
