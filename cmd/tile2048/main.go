// tile2048 plays the sliding tile merge puzzle in the terminal and serves it
// over SSH, WebSocket and MCP.
//
// Usage:
//
//	tile2048 play            - Play in this terminal
//	tile2048 serve           - Start SSH server for remote play
//	tile2048 web             - Start WebSocket server for browser front-ends
//	tile2048 mcp             - Serve MCP tools on stdin/stdout
//	tile2048 replay <moves>  - Replay a recorded game
//	tile2048 scores [board]  - Show high scores for a board size
//
// Global flags:
//
//	--config <path>   - Config file (default search: ~/.tile2048, ./configs, embedded)
//	--seed <value>    - Spawn seed for reproducible games (0 = random)
//	--db <path>       - Scores database (default: ~/.tile2048/scores.db)
//	--log-level <lvl> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Princic-1837592/2048/internal/config"
	"github.com/Princic-1837592/2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     uint64
	flagDBPath   string
	flagLogLevel string
	flagHeight   int
	flagWidth    int
	flagHistory  int
	flagPreset   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tile2048",
	Short: "Sliding tile merge puzzle for the terminal",
	Long: `tile2048 is the sliding tile puzzle: push every tile in one direction,
equal tiles merge, and a new tile appears after every push that changes the board.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser front-ends
  mcp      - Serve the game as MCP tools over stdio
  replay   - Replay a recorded game from its seed and moves
  scores   - View high scores

Examples:
  tile2048 play
  tile2048 play --height 5 --width 6 --history 3
  tile2048 play --preset huge --seed 42
  tile2048 serve --ssh :2222
  tile2048 scores 4x4`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to config YAML")
	flags.Uint64Var(&flagSeed, "seed", 0, "Spawn seed (0 = random)")
	flags.StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.IntVar(&flagHeight, "height", 0, "Board rows (3-10)")
	flags.IntVar(&flagWidth, "width", 0, "Board columns (3-10)")
	flags.IntVar(&flagHistory, "history", 0, "Number of undoable pushes (0 disables undo)")
	flags.StringVar(&flagPreset, "preset", "", "Board preset: tiny, classic, wide, large, huge")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the config file, then applies the preset and any flags set
// on the command line, in that order.
func loadConfig(cmd *cobra.Command) (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, err
	}

	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return config.GameConfig{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	flags := cmd.Flags()
	if flags.Changed("height") {
		cfg.Board.Height = flagHeight
	}
	if flags.Changed("width") {
		cfg.Board.Width = flagWidth
	}
	if flags.Changed("history") {
		cfg.Board.MaxHistory = flagHistory
	}
	if flags.Changed("seed") {
		cfg.Board.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return config.GameConfig{}, err
	}
	return cfg, nil
}

// newLogger creates the process logger on w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tile2048",
		Level:           level,
	}), nil
}

// openStore opens the scores database. Games still work without one,
// so failures are logged and nil is returned.
func openStore(path string, logger *log.Logger) *storage.Store {
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open scores database; scores will not be saved", "path", path, "error", err)
		return nil
	}
	return store
}
