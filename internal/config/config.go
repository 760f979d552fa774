// Package config provides YAML-based configuration loading for the
// tile2048 front-ends and servers.
package config

import (
	"errors"
	"fmt"

	"github.com/Princic-1837592/2048/internal/engine"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// GameConfig contains all configuration for a tile2048 installation.
type GameConfig struct {
	Board   BoardConfig   `yaml:"board"`
	TUI     TUIConfig     `yaml:"tui"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig defines the board a new game starts with.
type BoardConfig struct {
	Height     int    `yaml:"height"`
	Width      int    `yaml:"width"`
	MaxHistory int    `yaml:"max_history"` // 0 disables undo
	Seed       uint64 `yaml:"seed"`        // 0 draws a random seed per game
}

// TUIConfig defines terminal rendering parameters.
type TUIConfig struct {
	Animate   bool `yaml:"animate"`
	SlideTick int  `yaml:"slide_ticks"` // Frames spent sliding tiles
	PopTicks  int  `yaml:"pop_ticks"`   // Frames spent on merge/spawn highlight
	TickRate  int  `yaml:"tick_rate"`   // Frames per second
	CellWidth int  `yaml:"cell_width"`
}

// ServerConfig defines network front-end parameters.
type ServerConfig struct {
	SSHAddress     string   `yaml:"ssh_address"`
	HostKeyPath    string   `yaml:"host_key_path"`
	IdleTimeoutMin int      `yaml:"idle_timeout_minutes"`
	HTTPAddress    string   `yaml:"http_address"`
	AllowedOrigins []string `yaml:"allowed_origins"` // Empty allows any origin
}

// StorageConfig defines where finished scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Validate checks ranges that the engine would otherwise reject at game creation.
func (c GameConfig) Validate() error {
	b := c.Board
	if b.Height < engine.MinSize || b.Height > engine.MaxSize {
		return fmt.Errorf("%w: board.height %d not in %d..%d", ErrInvalidConfig, b.Height, engine.MinSize, engine.MaxSize)
	}
	if b.Width < engine.MinSize || b.Width > engine.MaxSize {
		return fmt.Errorf("%w: board.width %d not in %d..%d", ErrInvalidConfig, b.Width, engine.MinSize, engine.MaxSize)
	}
	if b.MaxHistory < 0 {
		return fmt.Errorf("%w: board.max_history must not be negative", ErrInvalidConfig)
	}
	if c.TUI.TickRate <= 0 {
		return fmt.Errorf("%w: tui.tick_rate must be positive", ErrInvalidConfig)
	}
	if c.TUI.SlideTick < 0 || c.TUI.PopTicks < 0 {
		return fmt.Errorf("%w: tui animation ticks must not be negative", ErrInvalidConfig)
	}
	if c.Server.IdleTimeoutMin < 0 {
		return fmt.Errorf("%w: server.idle_timeout_minutes must not be negative", ErrInvalidConfig)
	}
	return nil
}
