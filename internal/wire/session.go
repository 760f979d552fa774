package wire

import (
	"fmt"

	"github.com/Princic-1837592/2048/internal/engine"
)

// Defaults holds the board used when a new-game command leaves fields unset.
type Defaults struct {
	Height     int
	Width      int
	MaxHistory int
	Seed       uint64 // 0 draws a random seed
}

// Session owns one game and applies commands to it.
// Like the game itself, a Session is not safe for concurrent use.
type Session struct {
	game     *engine.Game
	defaults Defaults
	moves    []byte
}

// NewSession starts a session with a game built from defaults.
func NewSession(defaults Defaults) (*Session, error) {
	s := &Session{defaults: defaults}
	if err := s.newGame(Command{Kind: CmdNew, MaxHistory: -1}); err != nil {
		return nil, err
	}
	return s, nil
}

// Game returns the current game.
func (s *Session) Game() *engine.Game {
	return s.game
}

// Moves returns the replay tokens applied to the current game.
func (s *Session) Moves() string {
	return string(s.moves)
}

// Apply executes cmd and builds the response.
// A failed new-game command leaves the current game untouched.
func (s *Session) Apply(cmd Command) Response {
	op := cmd.Kind.String()
	resp := Response{Op: op}

	switch cmd.Kind {
	case CmdState:
	case CmdNew:
		if err := s.newGame(cmd); err != nil {
			return ErrorResponse(op, err)
		}
		resp.Changed = true
	case CmdPush:
		out, ok := s.game.Push(cmd.Direction)
		if ok {
			s.moves = append(s.moves, cmd.Direction.Token())
			resp.Outcome = NewOutcome(out)
		}
		resp.Changed = ok
	case CmdUndo:
		ok := s.game.Undo()
		if ok {
			s.moves = append(s.moves, engine.UndoToken)
		}
		resp.Changed = ok
	default:
		return ErrorResponse(op, fmt.Errorf("%w: kind %d", ErrUnknownCommand, cmd.Kind))
	}

	resp.State = NewState(s.game)
	return resp
}

// ApplyLine decodes a text frame and applies it.
func (s *Session) ApplyLine(line string) Response {
	cmd, err := ParseCommand(line)
	if err != nil {
		return ErrorResponse("", err)
	}
	return s.Apply(cmd)
}

func (s *Session) newGame(cmd Command) error {
	h, w, hist := cmd.Height, cmd.Width, cmd.MaxHistory
	if h == 0 {
		h = s.defaults.Height
	}
	if w == 0 {
		w = s.defaults.Width
	}
	if hist < 0 {
		hist = s.defaults.MaxHistory
	}

	var (
		g   *engine.Game
		err error
	)
	switch {
	case cmd.HasSeed:
		g, err = engine.New(h, w, hist, cmd.Seed)
	case s.defaults.Seed != 0:
		g, err = engine.New(h, w, hist, s.defaults.Seed)
	default:
		g, err = engine.NewRandom(h, w, hist)
	}
	if err != nil {
		return fmt.Errorf("wire: cannot start game: %w", err)
	}
	s.game = g
	s.moves = s.moves[:0]
	return nil
}
