//go:build unix

package ptyproc

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// spawn opens a PTY pair, attaches the slave to cmd's stdio, makes the
// child a session leader with the slave as its controlling terminal, and
// starts it. Grounded on internal/pty/session.go's pty.StartWithSize
// call, split out here so Process can also retain the slave fd for the
// echo get/set ioctls spec.md §4.B requires.
func (p *Process) spawn() error {
	ptm, pts, err := pty.Open()
	if err != nil {
		return newError("spawn.open", err)
	}

	p.cmd.Stdin = pts
	p.cmd.Stdout = pts
	p.cmd.Stderr = pts
	if p.cmd.SysProcAttr == nil {
		p.cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	p.cmd.SysProcAttr.Setsid = true
	p.cmd.SysProcAttr.Setctty = true

	if err := p.cmd.Start(); err != nil {
		_ = ptm.Close()
		_ = pts.Close()
		return newError("spawn.start", err)
	}

	// The child has its own copy of pts via fork/exec; the parent only
	// needs it alive for termios ioctls, not for I/O, but we keep it
	// open (rather than closing it like a plain pty.Start caller would)
	// so GetEcho/SetEcho keep working for the life of the session.
	p.master = ptm
	p.slave = pts
	return nil
}

// GetEcho reports whether the slave's termios has ECHO enabled.
func (p *Process) GetEcho() (bool, error) {
	t, err := unix.IoctlGetTermios(int(p.slave.Fd()), ioctlGetTermios)
	if err != nil {
		return false, newError("get_echo", err)
	}
	return t.Lflag&unix.ECHO != 0, nil
}

// SetEcho toggles the slave termios ECHO bit.
func (p *Process) SetEcho(on bool) error {
	t, err := unix.IoctlGetTermios(int(p.slave.Fd()), ioctlGetTermios)
	if err != nil {
		return newError("set_echo", err)
	}
	if on {
		t.Lflag |= unix.ECHO
	} else {
		t.Lflag &^= unix.ECHO
	}
	if err := unix.IoctlSetTermios(int(p.slave.Fd()), ioctlSetTermios, t); err != nil {
		return newError("set_echo", err)
	}
	return nil
}

// SetWindowSize applies rows/cols to the PTY.
func (p *Process) SetWindowSize(ws Winsize) error {
	return pty.Setsize(p.master, &pty.Winsize{Rows: ws.Rows, Cols: ws.Cols})
}

// GetWindowSize reads the current PTY dimensions.
func (p *Process) GetWindowSize() (Winsize, error) {
	size, err := pty.GetsizeFull(p.master)
	if err != nil {
		return Winsize{}, newError("get_window_size", err)
	}
	return Winsize{Rows: size.Rows, Cols: size.Cols}, nil
}

// Kill sends SIGKILL to the child, as the spec's "kill(signal)" primitive
// specialized to the common case.
func (p *Process) Kill() error {
	return p.SendSignal(syscall.SIGKILL)
}

// SendSignal delivers sig to the child process.
func (p *Process) SendSignal(sig os.Signal) error {
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Signal(sig); err != nil {
		return newError("send_signal", err)
	}
	return nil
}

func exitStatusFromError(cmd *exec.Cmd, err error) WaitStatus {
	pid := -1
	if cmd.Process != nil {
		pid = cmd.Process.Pid
	}
	ws := WaitStatus{Kind: Exited, PID: pid}
	if cmd.ProcessState == nil {
		return ws
	}
	sys, ok := cmd.ProcessState.Sys().(syscall.WaitStatus)
	if !ok {
		ws.ExitCode = cmd.ProcessState.ExitCode()
		return ws
	}
	switch {
	case sys.Exited():
		ws.Kind = Exited
		ws.ExitCode = sys.ExitStatus()
	case sys.Signaled():
		ws.Kind = Signaled
		ws.Signal = int(sys.Signal())
		ws.CoreDumped = sys.CoreDump()
	case sys.Stopped():
		ws.Kind = Stopped
		ws.Signal = int(sys.StopSignal())
	case sys.Continued():
		ws.Kind = Continued
	default:
		ws.ExitCode = cmd.ProcessState.ExitCode()
	}
	return ws
}
