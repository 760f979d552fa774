// Package mcp exposes a game as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Princic-1837592/2048/internal/engine"
	"github.com/Princic-1837592/2048/internal/storage"
	"github.com/Princic-1837592/2048/internal/wire"
)

const instructions = `Sliding tile puzzle - MCP Interface

Tiles slide as far as possible in the pushed direction. Two equal tiles that
collide merge into one tile of twice the value, which is added to the score.
After every push that changes the board a 2 (90%) or 4 (10%) appears on a
random empty cell. The game ends when no push can change the board.

AVAILABLE TOOLS:
- new_game: Start a new game (height, width 3..10; max_history; optional seed)
- push: Push all tiles up/down/left/right
- undo: Restore the state before the last push, spawn included
- state: Get the current board and score

Board rows are listed top to bottom; 0 is an empty cell.`

// Server owns a single game shared by all tool calls.
type Server struct {
	mu        sync.Mutex
	session   *wire.Session
	store     storage.ScoreSaver
	player    string
	saved     bool
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the tool server and its initial game.
// store may be nil, in which case finished games are not recorded.
func NewServer(defaults wire.Defaults, store storage.ScoreSaver, logger *log.Logger) (*Server, error) {
	session, err := wire.NewSession(defaults)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		session: session,
		store:   store,
		player:  "mcp",
		logger:  logger,
	}
	s.mcpServer = server.NewMCPServer(
		"tile2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s, nil
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves tool calls on stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game, discarding the current one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Number of rows, 3 to 10 (optional)",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Number of columns, 3 to 10 (optional)",
				},
				"max_history": map[string]interface{}{
					"type":        "integer",
					"description": "How many pushes can be undone; 0 disables undo (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "string",
					"description": "Decimal 64-bit seed for a reproducible game (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "push",
		Description: "Push all tiles in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to push",
					"enum":        []string{"up", "down", "left", "right"},
				},
			},
			Required: []string{"direction"},
		},
	}, s.handlePush)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Undo the most recent push",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleUndo)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "state",
		Description: "Get the current board, score and undo depth",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleState)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// intArg reads an optional integer. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) (int, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false, fmt.Errorf("%s must be an integer", key)
		}
		return int(n), true, nil
	case int:
		return n, true, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false, fmt.Errorf("%s must be an integer", key)
		}
		return i, true, nil
	}
	return 0, false, fmt.Errorf("%s must be an integer", key)
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	cmd := wire.Command{Kind: wire.CmdNew, MaxHistory: -1}

	var err error
	if cmd.Height, _, err = intArg(args, "height"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if cmd.Width, _, err = intArg(args, "width"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hist, ok, err := intArg(args, "max_history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if ok {
		if hist < 0 {
			return mcp.NewToolResultError("max_history must not be negative"), nil
		}
		cmd.MaxHistory = hist
	}
	if seed, _ := args["seed"].(string); seed != "" {
		cmd.Seed, err = strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid seed %q", seed)), nil
		}
		cmd.HasSeed = true
	}

	return s.apply(cmd)
}

func (s *Server) handlePush(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	direction, _ := arguments(request)["direction"].(string)
	d, err := engine.ParseDirection(direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.apply(wire.Command{Kind: wire.CmdPush, Direction: d})
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(wire.Command{Kind: wire.CmdUndo})
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(wire.Command{Kind: wire.CmdState})
}

func (s *Server) apply(cmd wire.Command) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := s.session.Apply(cmd)
	if resp.Error != "" {
		return mcp.NewToolResultError(resp.Error), nil
	}
	s.logger.Debug("tool call", "op", resp.Op, "changed", resp.Changed)

	if cmd.Kind == wire.CmdNew {
		s.saved = false
	}
	if resp.State.GameOver && !s.saved {
		s.saved = true
		s.saveScore()
	}

	return mcp.NewToolResultText(formatResponse(resp)), nil
}

func (s *Server) saveScore() {
	if s.store == nil {
		return
	}
	entry := storage.NewEntry(s.player, s.session.Game(), s.session.Moves())
	if _, err := s.store.SaveScore(entry); err != nil {
		s.logger.Error("cannot save score", "error", err)
	}
}

func formatResponse(resp wire.Response) string {
	var b strings.Builder
	st := resp.State

	switch resp.Op {
	case "push":
		if resp.Changed {
			o := resp.Outcome
			fmt.Fprintf(&b, "Pushed %s: +%d points, new %d at (%d,%d)\n\n",
				o.Direction, o.ScoreDelta, o.SpawnValue, o.Spawn[0], o.Spawn[1])
		} else {
			b.WriteString("Nothing moved; the board is unchanged\n\n")
		}
	case "undo":
		if resp.Changed {
			b.WriteString("Undid the last push\n\n")
		} else {
			b.WriteString("Nothing to undo\n\n")
		}
	case "new":
		b.WriteString("Started a new game\n\n")
	}

	fmt.Fprintf(&b, "Score: %d | Max tile: %d | Board: %dx%d | Undo available: %d/%d | Seed: %s\n\n",
		st.Score, st.MaxTile, st.Height, st.Width, st.UndoDepth, st.MaxHistory, st.Seed)
	b.WriteString(st.Text)
	b.WriteString("\n")
	if st.GameOver {
		b.WriteString("\nGAME OVER: no push can change the board\n")
	}
	return b.String()
}
