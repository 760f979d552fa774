package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Princic-1837592/2048/internal/platform/tui"
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

Each SSH connection gets its own game; the board flags set its size.
Scores are stored per-server (all users share the same leaderboard),
labelled with the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise the config's server.host_key_path, or ~/.tile2048/host_key

Examples:
  tile2048 serve                           # Listen on the configured address
  tile2048 serve --ssh :2222               # Listen on port 2222
  tile2048 serve --host-key ./my_host_key  # Use specific host key
  tile2048 serve --preset large            # Serve 6x6 games

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.SSHAddress = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeoutMin = flagIdleTimeout
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	logger = logger.WithPrefix("tile2048-ssh")

	var sessionStore tui.SessionStore
	if store := openStore(cfg.Storage.DBPath, logger); store != nil {
		defer store.Close()
		sessionStore = store
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.SSHAddress,
		HostKeyPath: cfg.Server.HostKeyPath,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeoutMin) * time.Minute,
		Board:       cfg.Board,
		TUI:         cfg.TUI,
	}, sessionStore, logger)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	logger.Info("board", "size", fmt.Sprintf("%dx%d", cfg.Board.Height, cfg.Board.Width), "history", cfg.Board.MaxHistory)
	return server.ListenAndServe()
}
