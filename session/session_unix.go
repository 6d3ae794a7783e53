//go:build unix

package session

import "syscall"

// hangupSignal is what Close sends to ask the child to shut down
// gracefully before escalating to SIGKILL.
var hangupSignal = syscall.SIGHUP
