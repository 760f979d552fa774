package engine

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the observable game state for hosts and replay checks.
type Snapshot struct {
	Height     int
	Width      int
	Seed       uint64
	Score      int
	Board      [][]int
	MaxTile    int // Highest tile on board
	UndoDepth  int // Number of pushes that can currently be undone
	MaxHistory int
	History    []Direction // Most recent first
	State      GameStateType
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	if g.GameOver() {
		state = StateGameOver
	}

	return Snapshot{
		Height:     g.grid.height,
		Width:      g.grid.width,
		Seed:       g.seed,
		Score:      g.score,
		Board:      g.grid.Rows(),
		MaxTile:    g.grid.MaxTile(),
		UndoDepth:  g.history.Len(),
		MaxHistory: g.maxHistory,
		History:    g.history.directions(),
		State:      state,
	}
}
