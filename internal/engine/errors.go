package engine

import "errors"

var (
	// ErrInvalidDimensions is returned when a board size falls outside [MinSize, MaxSize].
	ErrInvalidDimensions = errors.New("engine: board dimensions out of range")

	// ErrInvalidDirection is returned when a direction token does not decode.
	ErrInvalidDirection = errors.New("engine: invalid direction")

	// ErrInvalidBoard is returned by FromBoard for ragged rows or non power-of-two tiles.
	ErrInvalidBoard = errors.New("engine: invalid board")
)
