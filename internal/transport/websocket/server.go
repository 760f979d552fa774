// Package websocket serves games to browser front-ends over WebSocket.
// Every connection owns its own game; nothing is shared between clients.
package websocket

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/Princic-1837592/2048/internal/storage"
	"github.com/Princic-1837592/2048/internal/wire"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// ScoreStore is the storage used by the HTTP endpoints.
type ScoreStore interface {
	storage.ScoreSaver
	TopScores(board string, limit int) ([]storage.ScoreEntry, error)
}

// Options configures a Server.
type Options struct {
	Defaults       wire.Defaults
	AllowedOrigins []string      // Empty allows any origin
	IdleTimeout    time.Duration // Zero disables the read deadline
	Store          ScoreStore    // Optional
	Logger         *log.Logger
}

// Server hosts the WebSocket and score endpoints.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	decoder  *schema.Decoder
	logger   *log.Logger
}

// sessionParams are the query parameters of /ws.
type sessionParams struct {
	Player string `schema:"player"`
}

// scoresParams are the query parameters of /scores.
type scoresParams struct {
	Board string `schema:"board"`
	Limit int    `schema:"limit"`
}

// NewServer creates a server. A nil logger discards output.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		opts:    opts,
		decoder: schema.NewDecoder(),
		logger:  logger,
	}
	s.decoder.IgnoreUnknownKeys(true)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.allowOrigin(origin)
		},
	}
	return s
}

// Handler returns the routes wrapped in the CORS middleware:
//
//	GET /ws       game session
//	GET /scores   top scores for ?board=HxW
//	GET /healthz  liveness
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.ServeWS)
	mux.HandleFunc("GET /scores", s.serveScores)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	c := cors.New(cors.Options{
		AllowOriginFunc: s.allowOrigin,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

func (s *Server) allowOrigin(origin string) bool {
	return len(s.opts.AllowedOrigins) == 0 || slices.Contains(s.opts.AllowedOrigins, origin)
}

// ServeWS upgrades the request and runs one game session on it.
// ?player=name labels saved scores.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	var params sessionParams
	if err := s.decoder.Decode(&params, r.URL.Query()); err != nil {
		http.Error(w, "invalid query", http.StatusBadRequest)
		return
	}
	player := params.Player
	if player == "" {
		player = "web"
	}

	session, err := wire.NewSession(s.opts.Defaults)
	if err != nil {
		s.logger.Error("cannot start session", "error", err)
		http.Error(w, "cannot start game", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("session started", "player", player, "remote", r.RemoteAddr)
	err = s.runSession(conn, session, player)
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		s.logger.Warn("session ended with error", "player", player, "error", err)
		return
	}
	s.logger.Info("session ended", "player", player, "score", session.Game().Score())
}

func (s *Server) runSession(conn *websocket.Conn, session *wire.Session, player string) error {
	conn.SetReadLimit(maxMessageSize)

	// The client gets the initial state without asking.
	if err := s.write(conn, session.Apply(wire.Command{Kind: wire.CmdState})); err != nil {
		return err
	}

	saved := false
	for {
		if s.opts.IdleTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.opts.IdleTimeout))
		}
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		resp := session.ApplyLine(string(buf))
		if resp.Error != "" {
			s.logger.Debug("rejected command", "player", player, "error", resp.Error)
		} else {
			s.logger.Debug("applied command", "player", player, "op", resp.Op, "changed", resp.Changed)
		}

		if resp.Op == wire.CmdNew.String() && resp.Changed {
			saved = false
		}
		if resp.State != nil && resp.State.GameOver && !saved {
			saved = true
			s.saveScore(session, player)
		}

		if err := s.write(conn, resp); err != nil {
			return err
		}
	}
}

func (s *Server) write(conn *websocket.Conn, resp wire.Response) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(resp)
}

func (s *Server) saveScore(session *wire.Session, player string) {
	if s.opts.Store == nil {
		return
	}
	entry := storage.NewEntry(player, session.Game(), session.Moves())
	if _, err := s.opts.Store.SaveScore(entry); err != nil {
		s.logger.Error("cannot save score", "player", player, "error", err)
		return
	}
	s.logger.Info("score saved", "player", player, "board", entry.Board(), "score", entry.Score)
}

func (s *Server) serveScores(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		http.Error(w, "scores are not recorded", http.StatusNotFound)
		return
	}

	params := scoresParams{
		Board: storage.BoardKey(s.opts.Defaults.Height, s.opts.Defaults.Width),
		Limit: 10,
	}
	if err := s.decoder.Decode(&params, r.URL.Query()); err != nil || params.Limit <= 0 {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	board, limit := params.Board, params.Limit
	if board == "" {
		board = storage.BoardKey(s.opts.Defaults.Height, s.opts.Defaults.Width)
	}

	entries, err := s.opts.Store.TopScores(board, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "board", board, "error", err)
		http.Error(w, "cannot load scores", http.StatusInternalServerError)
		return
	}

	out := make([]scoreDTO, len(entries))
	for i, e := range entries {
		out[i] = scoreDTO{
			Rank:    i + 1,
			Player:  e.Player,
			Board:   e.Board(),
			Score:   e.Score,
			MaxTile: e.MaxTile,
			Seed:    strconv.FormatUint(e.Seed, 10),
			Date:    e.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("cannot write scores", "error", err)
	}
}

type scoreDTO struct {
	Rank    int       `json:"rank"`
	Player  string    `json:"player"`
	Board   string    `json:"board"`
	Score   int       `json:"score"`
	MaxTile int       `json:"max_tile"`
	Seed    string    `json:"seed"`
	Date    time.Time `json:"date"`
}
