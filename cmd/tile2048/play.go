package main

import (
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/Princic-1837592/2048/internal/platform/tui"
)

var flagNoAnimate bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/hjkl - Push tiles
  Z                - Undo the last push
  N                - New game
  T                - High scores
  ?                - More keys
  Q/Ctrl+C         - Quit

Examples:
  tile2048 play
  tile2048 play --height 3 --width 3
  tile2048 play --preset large --history 10
  tile2048 play --seed 1234 --no-animate`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoAnimate, "no-animate", false, "Disable slide and pop animations")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagNoAnimate {
		cfg.TUI.Animate = false
	}

	// Log lines would tear the full-screen UI; only warnings reach stderr, before it starts.
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	store := openStore(cfg.Storage.DBPath, logger)

	opts := tui.Options{
		Board:  cfg.Board,
		TUI:    cfg.TUI,
		Player: playerName(),
	}
	if store != nil {
		defer store.Close()
		opts.Store = store
		opts.Scores = store
	}

	return tui.Run(opts)
}

// playerName labels local scores with the login name.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
