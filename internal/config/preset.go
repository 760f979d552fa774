package config

import (
	"fmt"
	"slices"
)

// BoardPreset represents a named board layout.
type BoardPreset string

const (
	PresetTiny    BoardPreset = "tiny"
	PresetClassic BoardPreset = "classic"
	PresetLarge   BoardPreset = "large"
	PresetHuge    BoardPreset = "huge"
	PresetWide    BoardPreset = "wide"
)

// Presets lists the known presets from smallest to largest.
var Presets = []BoardPreset{PresetTiny, PresetClassic, PresetWide, PresetLarge, PresetHuge}

// ParsePreset validates a preset name.
func ParsePreset(name string) (BoardPreset, error) {
	p := BoardPreset(name)
	if !slices.Contains(Presets, p) {
		return "", fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	return p, nil
}

// ApplyPreset modifies the board section based on a preset.
// Larger boards get a deeper undo history.
func ApplyPreset(cfg *GameConfig, preset BoardPreset) {
	switch preset {
	case PresetTiny:
		cfg.Board.Height, cfg.Board.Width = 3, 3
		cfg.Board.MaxHistory = 1
	case PresetClassic:
		cfg.Board.Height, cfg.Board.Width = 4, 4
		cfg.Board.MaxHistory = 1
	case PresetWide:
		cfg.Board.Height, cfg.Board.Width = 4, 8
		cfg.Board.MaxHistory = 3
	case PresetLarge:
		cfg.Board.Height, cfg.Board.Width = 6, 6
		cfg.Board.MaxHistory = 5
	case PresetHuge:
		cfg.Board.Height, cfg.Board.Width = 10, 10
		cfg.Board.MaxHistory = 10
	}
}
