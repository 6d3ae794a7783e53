// Command expectpty is a small CLI demonstrating the library: spawn a
// command under a PTY, optionally wait for one literal needle to match,
// then hand control to the user via interact, or expose the session to
// SSH clients (the attach subcommand).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trybotster/expectpty/config"
	"github.com/trybotster/expectpty/needle"
	"github.com/trybotster/expectpty/session"
	"github.com/trybotster/expectpty/sshattach"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:     "expectpty",
		Short:   "Drive an interactive child process via a PTY",
		Version: Version,
	}

	runCmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Spawn a command and interact with it directly",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInteractive,
	}
	rootCmd.AddCommand(runCmd)

	expectCmd := &cobra.Command{
		Use:   "expect <literal> -- <command> [args...]",
		Short: "Spawn a command, wait for a literal needle to match, print captures, then interact",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runExpect,
	}
	rootCmd.AddCommand(expectCmd)

	attachCmd := &cobra.Command{
		Use:   "attach <addr> -- <command> [args...]",
		Short: "Spawn a command and expose it to SSH clients on addr",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runAttach,
	}
	rootCmd.AddCommand(attachCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func spawnFromArgs(args []string) (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(args[0], args[1:]...)
	s, err := session.Spawn(cmd, slog.Default())
	if err != nil {
		return nil, err
	}
	s.SetExpectTimeout(cfg.Timeout())
	return s, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := spawnFromArgs(args)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext()
	defer cancel()
	return s.Interact(ctx)
}

func runExpect(cmd *cobra.Command, args []string) error {
	pattern, args := args[0], args[1:]

	s, err := spawnFromArgs(args)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext()
	defer cancel()

	caps, err := s.Expect(ctx, needle.NewLiteral(pattern))
	if err != nil {
		return err
	}
	fmt.Printf("before: %q\nmatched: %q\n", caps.Before, caps.Matched)

	return s.Interact(ctx)
}

func runAttach(cmd *cobra.Command, args []string) error {
	addr, args := args[0], args[1:]

	s, err := spawnFromArgs(args)
	if err != nil {
		return err
	}
	defer s.Close()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := sshattach.New(ln, sshattach.Wrap(s), slog.Default())
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(os.Stderr, "listening for ssh clients on %s\n", addr)
	return srv.Serve(ctx)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		time.Sleep(100 * time.Millisecond)
		stop()
	}()
	return ctx, stop
}
