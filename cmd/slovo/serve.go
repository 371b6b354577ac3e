package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slovotetris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.slovo/host_key

Examples:
  slovo serve                           # Listen on the configured address
  slovo serve --ssh :2222               # Listen on port 2222
  slovo serve --host-key ./my_host_key  # Use specific host key
  slovo serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 2323`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config: :2323)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), "slovo-ssh")
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = a.cfg.Server.SSHAddr
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	store, err := a.openStore()
	if err != nil {
		a.logger.Warn("could not open scores database, scores will not be kept", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, a.newGame, a.logger)
	if err != nil {
		return err
	}

	a.logger.Info("press Ctrl+C to stop", "connect", "ssh localhost -p <port>")
	return server.ListenAndServe()
}
