package engine

import (
	"fmt"
	"strings"
)

// Direction represents a push direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction in declaration order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Token returns the single-character encoding used by text front-ends.
func (d Direction) Token() byte {
	switch d {
	case DirUp:
		return 'U'
	case DirDown:
		return 'D'
	case DirLeft:
		return 'L'
	case DirRight:
		return 'R'
	default:
		return '?'
	}
}

// Valid reports whether d is one of the four push directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection decodes a direction token.
// Accepted: u/d/l/r, the w/a/s keyboard letters and full words, case-insensitive.
// "d" always decodes as Down, never as the WASD right key.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "u", "w", "up":
		return DirUp, nil
	case "d", "s", "down":
		return DirDown, nil
	case "l", "a", "left":
		return DirLeft, nil
	case "r", "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
}
