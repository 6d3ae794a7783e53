//go:build !windows

package expect

// lineTerminator is what SendLine appends on a unix PTY: a single
// carriage return, which is what Enter sends on a real terminal; the
// slave's line discipline (ICRNL) turns it into a newline for the child.
var lineTerminator = []byte{'\r'}
