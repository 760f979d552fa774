package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Princic-1837592/2048/internal/storage"
	"github.com/Princic-1837592/2048/internal/transport/mcp"
	"github.com/Princic-1837592/2048/internal/wire"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout.

Tools: new_game, push, undo, state. One game is shared by all calls;
finished games are recorded with the player name "mcp".

Logs go to stderr; stdout carries the protocol.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	logger = logger.WithPrefix("tile2048-mcp")

	var saver storage.ScoreSaver
	if store := openStore(cfg.Storage.DBPath, logger); store != nil {
		defer store.Close()
		saver = store
	}

	server, err := mcp.NewServer(wire.Defaults{
		Height:     cfg.Board.Height,
		Width:      cfg.Board.Width,
		MaxHistory: cfg.Board.MaxHistory,
		Seed:       cfg.Board.Seed,
	}, saver, logger)
	if err != nil {
		return err
	}

	logger.Info("serving MCP on stdio")
	return server.ServeStdio()
}
