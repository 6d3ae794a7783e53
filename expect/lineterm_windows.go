//go:build windows

package expect

// lineTerminator is what SendLine appends under ConPTY: CRLF, matching
// the Windows console's native line ending.
var lineTerminator = []byte{'\r', '\n'}
