package wire

import (
	"strconv"

	"github.com/Princic-1837592/2048/internal/engine"
)

// Cell is a [row, col] pair.
type Cell [2]int

func cellOf(c engine.Coord) Cell {
	return Cell{c.Row, c.Col}
}

// State is the JSON view of a game.
type State struct {
	Height     int      `json:"height"`
	Width      int      `json:"width"`
	Board      [][]int  `json:"board"`
	Text       string   `json:"text"` // Space separated rows joined by newlines
	Score      int      `json:"score"`
	MaxTile    int      `json:"max_tile"`
	Seed       string   `json:"seed"`
	UndoDepth  int      `json:"undo_depth"`
	MaxHistory int      `json:"max_history"`
	History    []string `json:"history"` // Most recent first
	GameOver   bool     `json:"game_over"`
}

// Outcome is the JSON view of a push that moved tiles.
// Moves[r][c] lists the pre-push cells whose tiles now sit at (r, c):
// empty when the tile did not move, two entries after a merge.
type Outcome struct {
	Direction  string     `json:"direction"`
	Moves      [][][]Cell `json:"moves"`
	Spawn      Cell       `json:"spawn"`
	SpawnValue int        `json:"spawn_value"`
	ScoreDelta int        `json:"score_delta"`
	Score      int        `json:"score"`
}

// Response answers every command. Exactly one of Error or State is set.
type Response struct {
	Op      string   `json:"op"`
	Changed bool     `json:"changed"` // Push moved tiles, undo restored a state or new started a game
	Outcome *Outcome `json:"outcome,omitempty"`
	State   *State   `json:"state,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// NewState builds the JSON view of g.
func NewState(g *engine.Game) *State {
	snap := g.Snapshot()
	history := make([]string, len(snap.History))
	for i, d := range snap.History {
		history[i] = string(d.Token())
	}
	return &State{
		Height:     snap.Height,
		Width:      snap.Width,
		Board:      snap.Board,
		Text:       g.Grid().String(),
		Score:      snap.Score,
		MaxTile:    snap.MaxTile,
		Seed:       strconv.FormatUint(snap.Seed, 10),
		UndoDepth:  snap.UndoDepth,
		MaxHistory: snap.MaxHistory,
		History:    history,
		GameOver:   snap.State == engine.StateGameOver,
	}
}

// NewOutcome converts an engine outcome.
func NewOutcome(o engine.PushOutcome) *Outcome {
	moves := make([][][]Cell, len(o.Moves))
	for r, row := range o.Moves {
		moves[r] = make([][]Cell, len(row))
		for c, p := range row {
			origins := p.Origins()
			cells := make([]Cell, len(origins))
			for i, at := range origins {
				cells[i] = cellOf(at)
			}
			moves[r][c] = cells
		}
	}
	return &Outcome{
		Direction:  string(o.Direction.Token()),
		Moves:      moves,
		Spawn:      cellOf(o.Spawn),
		SpawnValue: o.SpawnValue,
		ScoreDelta: o.ScoreDelta,
		Score:      o.Score,
	}
}

// ErrorResponse wraps an error for the client.
func ErrorResponse(op string, err error) Response {
	return Response{Op: op, Error: err.Error()}
}
