//go:build windows

package ptyproc

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// spawn starts cmd attached to a ConPTY, using creack/pty's Windows
// support. ConPTY has no separate slave file descriptor to hold termios
// on, so GetEcho/SetEcho below are no-ops: the console subsystem manages
// echo itself, matching spec.md §4.B's note that platform-specific
// failure surfaces (there is no ECHO bit to toggle here) are expected.
func (p *Process) spawn() error {
	f, err := pty.Start(p.cmd)
	if err != nil {
		return newError("spawn.start", err)
	}
	p.master = f
	return nil
}

// GetEcho always reports true: ConPTY echoes by default and exposes no
// per-session toggle through creack/pty.
func (p *Process) GetEcho() (bool, error) { return true, nil }

// SetEcho is a no-op on Windows; see the doc comment on spawn above.
func (p *Process) SetEcho(on bool) error { return nil }

// SetWindowSize applies rows/cols to the ConPTY.
func (p *Process) SetWindowSize(ws Winsize) error {
	return pty.Setsize(p.master, &pty.Winsize{Rows: ws.Rows, Cols: ws.Cols})
}

// GetWindowSize reads the current ConPTY dimensions.
func (p *Process) GetWindowSize() (Winsize, error) {
	size, err := pty.GetsizeFull(p.master)
	if err != nil {
		return Winsize{}, newError("get_window_size", err)
	}
	return Winsize{Rows: size.Rows, Cols: size.Cols}, nil
}

// Kill terminates the child process; Windows has no SIGKILL, so this
// maps to Process.Kill from os/exec.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil {
		return newError("kill", err)
	}
	return nil
}

// SendSignal on Windows only supports os.Interrupt and os.Kill through
// the standard library; anything else surfaces the os package's own
// "not supported" error rather than silently succeeding.
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
	if cmd.ProcessState != nil {
		ws.ExitCode = cmd.ProcessState.ExitCode()
	}
	return ws
}
