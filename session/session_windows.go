//go:build windows

package session

import "os"

// hangupSignal is what Close sends to ask the child to shut down
// gracefully before escalating to SIGKILL. Windows has no SIGHUP; the
// Go runtime only supports delivering os.Interrupt (as a CTRL_BREAK
// event) or os.Kill to a child process.
var hangupSignal = os.Interrupt
