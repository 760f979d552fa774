// Package wire defines the JSON messages exchanged with remote front-ends
// and a Session that applies decoded commands to a game.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Princic-1837592/2048/internal/engine"
)

var (
	// ErrUnknownCommand is returned for a command token or op that does not decode.
	ErrUnknownCommand = errors.New("wire: unknown command")

	// ErrBadArguments is returned when a known command has malformed arguments.
	ErrBadArguments = errors.New("wire: bad command arguments")
)

// CommandKind identifies the operation a Command performs.
type CommandKind int

const (
	CmdState CommandKind = iota
	CmdNew
	CmdPush
	CmdUndo
)

// String returns the op name used in JSON requests.
func (k CommandKind) String() string {
	switch k {
	case CmdState:
		return "state"
	case CmdNew:
		return "new"
	case CmdPush:
		return "push"
	case CmdUndo:
		return "undo"
	default:
		return "unknown"
	}
}

// Command is a decoded client request.
type Command struct {
	Kind      CommandKind
	Direction engine.Direction // CmdPush only

	// CmdNew only. Zero Height or Width and negative MaxHistory fall back
	// to the session defaults.
	Height     int
	Width      int
	MaxHistory int
	Seed       uint64
	HasSeed    bool
}

// Request is the JSON form of a command.
//
//	{"op":"push","direction":"L"}
//	{"op":"new","height":4,"width":5,"max_history":2,"seed":"42"}
//
// Seed travels as a string so 64-bit values survive JavaScript clients.
type Request struct {
	Op         string `json:"op"`
	Direction  string `json:"direction,omitempty"`
	Height     int    `json:"height,omitempty"`
	Width      int    `json:"width,omitempty"`
	MaxHistory *int   `json:"max_history,omitempty"`
	Seed       string `json:"seed,omitempty"`
}

// Command validates the request and converts it.
func (r Request) Command() (Command, error) {
	switch strings.ToLower(r.Op) {
	case "state", "get_state":
		return Command{Kind: CmdState}, nil
	case "undo":
		return Command{Kind: CmdUndo}, nil
	case "push":
		d, err := engine.ParseDirection(r.Direction)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %w", ErrBadArguments, err)
		}
		return Command{Kind: CmdPush, Direction: d}, nil
	case "new", "new_game":
		cmd := Command{Kind: CmdNew, Height: r.Height, Width: r.Width, MaxHistory: -1}
		if r.MaxHistory != nil {
			if *r.MaxHistory < 0 {
				return Command{}, fmt.Errorf("%w: negative max_history", ErrBadArguments)
			}
			cmd.MaxHistory = *r.MaxHistory
		}
		if r.Seed != "" {
			seed, err := strconv.ParseUint(r.Seed, 10, 64)
			if err != nil {
				return Command{}, fmt.Errorf("%w: seed %q", ErrBadArguments, r.Seed)
			}
			cmd.Seed, cmd.HasSeed = seed, true
		}
		return cmd, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, r.Op)
}

// ParseCommand decodes a text frame. A frame starting with '{' is a JSON
// Request; anything else is a token line:
//
//	U D L R (or any direction word)   push
//	Z                                 undo
//	? or state                        state
//	N height width history [seed]     new game
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			return Command{}, fmt.Errorf("%w: %w", ErrBadArguments, err)
		}
		return req.Command()
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty frame", ErrUnknownCommand)
	}

	head := strings.ToLower(fields[0])
	switch head {
	case "z", "undo":
		return Command{Kind: CmdUndo}, nil
	case "?", "state":
		return Command{Kind: CmdState}, nil
	case "n", "new":
		return parseNew(fields[1:])
	}

	d, err := engine.ParseDirection(head)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return Command{Kind: CmdPush, Direction: d}, nil
}

func parseNew(args []string) (Command, error) {
	if len(args) != 3 && len(args) != 4 {
		return Command{}, fmt.Errorf("%w: want N height width history [seed]", ErrBadArguments)
	}

	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(args[i])
		if err != nil || n < 0 {
			return Command{}, fmt.Errorf("%w: %q is not a non-negative integer", ErrBadArguments, args[i])
		}
		nums[i] = n
	}

	cmd := Command{Kind: CmdNew, Height: nums[0], Width: nums[1], MaxHistory: nums[2]}
	if len(args) == 4 {
		seed, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: seed %q", ErrBadArguments, args[3])
		}
		cmd.Seed, cmd.HasSeed = seed, true
	}
	return cmd, nil
}
