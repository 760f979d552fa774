// Package engine implements the rules of the sliding-tile merge puzzle:
// directional pushes with merge provenance, seeded spawns and bounded undo.
//
// A Game is not safe for concurrent use. Hosts that share one between
// goroutines must serialize calls themselves.
package engine

import "fmt"

// Spawn odds: a new tile is a 4 with probability 1/spawnFourOdds, otherwise a 2.
const spawnFourOdds = 10

// PushOutcome describes a push that changed the board.
type PushOutcome struct {
	Direction  Direction
	Moves      [][]Provenance // Per destination cell; see Provenance
	Spawn      Coord          // Cell that received the new tile
	SpawnValue int            // 2 or 4
	ScoreDelta int            // Sum of merge results of this push
	Score      int            // Score after the push
}

// Game holds the board, score, spawn generator and undo history of one session.
type Game struct {
	grid       Grid
	score      int
	seed       uint64
	gen        Generator
	history    history
	maxHistory int
}

// New creates a game with an explicit seed and spawns the two starting tiles.
// maxHistory of 0 disables undo.
func New(height, width, maxHistory int, seed uint64) (*Game, error) {
	g, err := newGame(height, width, maxHistory, seed)
	if err != nil {
		return nil, err
	}
	g.spawnTile()
	g.spawnTile()
	return g, nil
}

// NewRandom creates a game seeded from the process entropy source.
// The chosen seed is available through Seed.
func NewRandom(height, width, maxHistory int) (*Game, error) {
	return New(height, width, maxHistory, randomSeed())
}

// FromBoard creates a game from explicit rows without spawning any tile.
// The generator is seeded with seed for subsequent spawns.
func FromBoard(rows [][]int, maxHistory int, seed uint64) (*Game, error) {
	grid, err := gridFromRows(rows)
	if err != nil {
		return nil, err
	}
	g, err := newGame(grid.height, grid.width, maxHistory, seed)
	if err != nil {
		return nil, err
	}
	g.grid = grid
	return g, nil
}

func newGame(height, width, maxHistory int, seed uint64) (*Game, error) {
	if err := checkDimensions(height, width); err != nil {
		return nil, err
	}
	if maxHistory < 0 {
		return nil, fmt.Errorf("engine: negative history depth %d", maxHistory)
	}
	return &Game{
		grid:       NewGrid(height, width),
		seed:       seed,
		gen:        NewGenerator(seed),
		history:    newHistory(maxHistory),
		maxHistory: maxHistory,
	}, nil
}

// Push moves all tiles in direction d.
// Returns false, with no state change at all, when nothing would move
// or d is not a valid direction.
func (g *Game) Push(d Direction) (PushOutcome, bool) {
	if !d.Valid() {
		return PushOutcome{}, false
	}

	res := Slide(g.grid, d)
	if !res.Moved {
		return PushOutcome{}, false
	}

	// Slide returns a fresh grid, so the old one is never written again
	// and can be retained without a copy.
	g.history.pushFront(snapshot{
		grid:      g.grid,
		score:     g.score,
		gen:       g.gen,
		direction: d,
	})

	g.grid = res.Grid
	g.score += res.Score
	at, value := g.spawnTile()

	return PushOutcome{
		Direction:  d,
		Moves:      res.Moves,
		Spawn:      at,
		SpawnValue: value,
		ScoreDelta: res.Score,
		Score:      g.score,
	}, true
}

// Undo restores the state before the most recent push.
// Returns false if there is nothing to undo.
func (g *Game) Undo() bool {
	s, ok := g.history.popFront()
	if !ok {
		return false
	}
	g.grid = s.grid
	g.score = s.score
	g.gen = s.gen
	return true
}

// spawnTile places a 2 or 4 on a random empty cell.
// The cell is drawn by rejection sampling, row before column, then the value.
// Callers guarantee at least one empty cell.
func (g *Game) spawnTile() (Coord, int) {
	var at Coord
	for {
		at.Row = g.gen.IntN(g.grid.height)
		at.Col = g.gen.IntN(g.grid.width)
		if g.grid.At(at.Row, at.Col) == 0 {
			break
		}
	}

	value := 2
	if g.gen.IntN(spawnFourOdds) == 0 {
		value = 4
	}
	g.grid.Set(at.Row, at.Col, value)
	return at, value
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Board returns a copy of the board rows.
func (g *Game) Board() [][]int {
	return g.grid.Rows()
}

// Grid returns a copy of the board.
func (g *Game) Grid() Grid {
	return g.grid.Clone()
}

// Height returns the number of rows.
func (g *Game) Height() int {
	return g.grid.height
}

// Width returns the number of columns.
func (g *Game) Width() int {
	return g.grid.width
}

// Get returns the tile value at (row, col); 0 means empty.
func (g *Game) Get(row, col int) int {
	return g.grid.At(row, col)
}

// History returns the directions that can be undone, most recent first.
func (g *Game) History() []Direction {
	return g.history.directions()
}

// Seed returns the seed the game was created with.
func (g *Game) Seed() uint64 {
	return g.seed
}

// MaxHistory returns the configured undo depth.
func (g *Game) MaxHistory() int {
	return g.maxHistory
}

// MaxTile returns the highest tile on the board.
func (g *Game) MaxTile() int {
	return g.grid.MaxTile()
}

// GameOver returns true if no push can change the board.
func (g *Game) GameOver() bool {
	return !g.grid.CanMove()
}
