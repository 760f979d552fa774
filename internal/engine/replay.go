package engine

import (
	"fmt"
	"unicode"
)

// UndoToken is the replay token that undoes the previous push.
const UndoToken = 'z'

// Replay creates a game from seed and applies a token string to it.
// Tokens are direction letters accepted by ParseDirection or UndoToken;
// whitespace is ignored. Pushes that do not move and undos with empty
// history are skipped, exactly as they would be interactively.
// Returns the outcomes of the pushes that moved tiles, in order.
func Replay(height, width, maxHistory int, seed uint64, moves string) (*Game, []PushOutcome, error) {
	g, err := New(height, width, maxHistory, seed)
	if err != nil {
		return nil, nil, err
	}

	var outcomes []PushOutcome
	for i, r := range moves {
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.ToLower(r) == UndoToken {
			g.Undo()
			continue
		}
		d, err := ParseDirection(string(r))
		if err != nil {
			return g, outcomes, fmt.Errorf("engine: replay token %d: %w", i, err)
		}
		if out, ok := g.Push(d); ok {
			outcomes = append(outcomes, out)
		}
	}
	return g, outcomes, nil
}
