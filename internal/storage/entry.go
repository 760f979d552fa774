package storage

import "github.com/Princic-1837592/2048/internal/engine"

// NewEntry builds the record for a finished game.
// moves is the replay token string that reproduces the final board from the game's seed.
func NewEntry(player string, g *engine.Game, moves string) ScoreEntry {
	return ScoreEntry{
		Player:  player,
		Height:  g.Height(),
		Width:   g.Width(),
		Score:   g.Score(),
		MaxTile: g.MaxTile(),
		Seed:    g.Seed(),
		Moves:   moves,
	}
}

// ScoreSaver is the write side of Store used by front-ends.
type ScoreSaver interface {
	SaveScore(e ScoreEntry) (int64, error)
}

var _ ScoreSaver = (*Store)(nil)
