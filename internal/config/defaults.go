package config

import (
	_ "embed"

	"github.com/Princic-1837592/2048/internal/engine"
)

//go:embed defaults/tile2048.yaml
var defaultYAML []byte

// DefaultGameConfig returns the built-in configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Height:     engine.DefaultSize,
			Width:      engine.DefaultSize,
			MaxHistory: 1,
		},
		TUI: TUIConfig{
			Animate:   true,
			SlideTick: 6,
			PopTicks:  4,
			TickRate:  60,
			CellWidth: 6,
		},
		Server: ServerConfig{
			SSHAddress:     ":2222",
			HostKeyPath:    ".ssh/tile2048_ed25519",
			IdleTimeoutMin: 30,
			HTTPAddress:    ":8080",
		},
		Storage: StorageConfig{
			DBPath: "~/.tile2048/scores.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
