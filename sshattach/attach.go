// Package sshattach exposes a running expectpty Session to a remote
// terminal over SSH, so a human can attach to a programmatically driven
// child the same way they'd attach to any other shell. Grounded on the
// teacher's internal/sshserver package: same Server/bidirectional
// io.Copy shape, retargeted from "browser views an agent's PTY" to
// "any SSH client attaches to one expectpty Session."
package sshattach

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/trybotster/expectpty/ptyproc"
	"github.com/trybotster/expectpty/session"
	"github.com/trybotster/expectpty/xerrors"
)

// Attachable is the subset of *session.Session the SSH bridge needs.
// Declared narrowly so tests can substitute a fake.
type Attachable interface {
	io.Reader
	io.Writer
	SetWindowSize(ws ptyproc.Winsize) error
}

// Server bridges a single fixed Session to any number of sequential SSH
// clients. Only one client is attached at a time; a client that connects
// while another is attached is told so and its session exits with status
// 1, mirroring spec.md §5's "only one interact call may be active at a
// time."
type Server struct {
	listener net.Listener
	target   Attachable
	logger   *slog.Logger

	mu sync.Mutex
}

// New returns a Server that will bridge target to SSH clients accepted
// on listener.
func New(listener net.Listener, target Attachable, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{listener: listener, target: target, logger: logger}
}

// Serve accepts connections until ctx is cancelled or the listener is
// closed.
func (srv *Server) Serve(ctx context.Context) error {
	hostSigner, err := newEphemeralHostSigner()
	if err != nil {
		return xerrors.NewError(xerrors.KindIO, "sshattach.serve", err)
	}

	server := &ssh.Server{
		Handler: srv.handleSession,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		SubsystemHandlers: map[string]ssh.SubsystemHandler{
			"sftp": nil,
		},
		HostSigners: []ssh.Signer{hostSigner},
	}

	go func() {
		<-ctx.Done()
		srv.listener.Close()
	}()

	srv.logger.Info("sshattach server starting", "addr", srv.listener.Addr())

	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return xerrors.NewError(xerrors.KindIO, "sshattach.serve", err)
			}
		}
		go server.HandleConn(conn)
	}
}

func (srv *Server) handleSession(sshSess ssh.Session) {
	user := sshSess.User()
	srv.logger.Info("ssh attach session started", "user", user)
	defer srv.logger.Info("ssh attach session ended", "user", user)

	if !srv.mu.TryLock() {
		fmt.Fprintln(sshSess, "another client is already attached")
		sshSess.Exit(1)
		return
	}
	defer srv.mu.Unlock()

	_, winCh, isPty := sshSess.Pty()
	if isPty {
		go func() {
			for win := range winCh {
				if err := srv.target.SetWindowSize(ptyproc.Winsize{
					Rows: uint16(win.Height),
					Cols: uint16(win.Width),
				}); err != nil {
					srv.logger.Warn("resize failed", "error", err)
				}
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		io.Copy(sshSess, srv.target)
	}()
	go func() {
		defer wg.Done()
		io.Copy(srv.target, sshSess)
	}()

	wg.Wait()
}

// Close shuts down the underlying listener.
func (srv *Server) Close() error { return srv.listener.Close() }

// Wrap adapts a *session.Session into an Attachable, bridging the SSH
// client directly to the session's raw stream rather than through the
// expect engine's buffer — an attached human wants every byte the child
// produces, not needle-filtered captures.
func Wrap(s *session.Session) Attachable { return &sessionAdapter{s: s} }

type sessionAdapter struct {
	s *session.Session
}

func (a *sessionAdapter) Read(p []byte) (int, error)  { return a.s.Stream().Read(p) }
func (a *sessionAdapter) Write(p []byte) (int, error) { return a.s.Stream().Write(p) }
func (a *sessionAdapter) SetWindowSize(ws ptyproc.Winsize) error {
	return a.s.SetWindowSize(ws)
}

var _ Attachable = (*sessionAdapter)(nil)

// newEphemeralHostSigner generates a fresh ed25519 host key for the
// lifetime of one Server.Serve call — this bridge has no persistent
// identity to protect beyond the attached child's own session, so
// there is no config file or on-disk key to manage.
func newEphemeralHostSigner() (ssh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return gossh.NewSignerFromKey(priv)
}
