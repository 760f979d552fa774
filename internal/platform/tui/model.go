package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Princic-1837592/2048/internal/config"
	"github.com/Princic-1837592/2048/internal/engine"
	"github.com/Princic-1837592/2048/internal/storage"
)

// Layout constants
const (
	panelWidth   = 16 // Side panel content width
	panelChrome  = 4  // Side panel border and padding
	panelGap     = 2
	chromeLines  = 4 // Title, status, help and one spare line
	historyLines = 8 // Most recent pushes shown in the side panel
)

// Options configures a game screen.
type Options struct {
	Board    config.BoardConfig
	TUI      config.TUIConfig
	Store    storage.ScoreSaver // Optional; finished games are recorded here
	Scores   ScoreReader        // Optional; enables the in-game score table
	Player   string
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // Optional; SSH sessions pass their own
}

// scoreSavedMsg reports the result of recording a finished game.
type scoreSavedMsg struct {
	id  int64
	err error
}

// Model is the Bubble Tea model of the game screen.
type Model struct {
	game       *engine.Game
	board      config.BoardConfig
	tui        config.TUIConfig
	store      storage.ScoreSaver
	scores     ScoreReader
	scoreboard *ScoreboardModel // Non-nil while the score table is shown
	player     string
	logger     *log.Logger
	styles     styles
	keys       KeyMap
	help       help.Model
	anim       animator
	ticking    bool   // A tick chain is in flight
	moves      []byte // Replay tokens of the current game
	status     string
	width      int
	height     int
	scoreSaved bool
	quitting   bool
}

// NewModel creates the game screen and its first game.
// A zero seed in opts.Board draws a random one.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "player"
	}

	m := Model{
		board:  opts.Board,
		tui:    opts.TUI,
		store:  opts.Store,
		scores: opts.Scores,
		player: player,
		logger: logger,
		styles: newStyles(opts.Renderer),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		anim:   newAnimator(opts.TUI.SlideTick, opts.TUI.PopTicks),
	}

	game, err := m.createGame(opts.Board.Seed)
	if err != nil {
		return Model{}, err
	}
	m.game = game
	return m, nil
}

func (m Model) createGame(seed uint64) (*engine.Game, error) {
	b := m.board
	if seed != 0 {
		return engine.New(b.Height, b.Width, b.MaxHistory, seed)
	}
	return engine.NewRandom(b.Height, b.Width, b.MaxHistory)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scoreboard != nil {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.scoreboard != nil {
			return m.updateScoreboard(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()

	case scoreSavedMsg:
		if msg.err != nil {
			m.status = "Could not save score: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Score saved as game #%d", msg.id)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d, ok := m.keys.Direction(msg); ok {
		return m.push(d)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Undo):
		m.anim.stop()
		if !m.game.Undo() {
			m.status = "Nothing to undo"
			return m, nil
		}
		m.moves = append(m.moves, engine.UndoToken)
		m.status = "Undid the last push"
		return m, nil

	case key.Matches(msg, m.keys.New):
		game, err := m.createGame(0)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.game = game
		m.moves = nil
		m.scoreSaved = false
		m.anim.stop()
		m.status = fmt.Sprintf("New game, seed %d", game.Seed())
		return m, nil

	case key.Matches(msg, m.keys.Scores):
		if m.scores == nil {
			m.status = "Scores are not recorded"
			return m, nil
		}
		board := storage.BoardKey(m.game.Height(), m.game.Width())
		sb := NewScoreboardModel(m.scores, board, m.width, m.height)
		m.scoreboard = &sb
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// updateScoreboard forwards input to the score table; its quit keys return to the game.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(k, m.scoreboard.keys.Quit) || key.Matches(k, m.keys.Scores) {
			m.scoreboard = nil
			return m, nil
		}
	}

	updated, cmd := m.scoreboard.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}
	return m, cmd
}

func (m Model) push(d engine.Direction) (tea.Model, tea.Cmd) {
	prev := m.game.Board()
	out, ok := m.game.Push(d)
	if !ok {
		m.status = fmt.Sprintf("%s: nothing moves", d)
		return m, nil
	}

	m.moves = append(m.moves, d.Token())
	m.status = ""
	if out.ScoreDelta > 0 {
		m.status = fmt.Sprintf("%s: +%d", d, out.ScoreDelta)
	}

	var cmds []tea.Cmd
	if m.tui.Animate {
		m.anim.start(prev, out)
		if m.anim.active() && !m.ticking {
			m.ticking = true
			cmds = append(cmds, tickCmd(m.tui.TickRate))
		}
	}

	if m.game.GameOver() && !m.scoreSaved {
		m.scoreSaved = true
		if cmd := m.saveScore(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleTick advances the animation while one is running.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.anim.advance() {
		return m, tickCmd(m.tui.TickRate)
	}
	m.ticking = false
	return m, nil
}

// saveScore records the finished game off the update loop.
func (m Model) saveScore() tea.Cmd {
	if m.store == nil {
		return nil
	}
	entry := storage.NewEntry(m.player, m.game, string(m.moves))
	store, logger := m.store, m.logger
	return func() tea.Msg {
		id, err := store.SaveScore(entry)
		if err != nil {
			logger.Error("cannot save score", "player", entry.Player, "error", err)
		} else {
			logger.Info("score saved", "player", entry.Player, "board", entry.Board(), "score", entry.Score)
		}
		return scoreSavedMsg{id: id, err: err}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	availW, availH := 0, 0
	if m.width > 0 || m.height > 0 {
		availW = m.width - panelWidth - panelChrome - panelGap
		availH = m.height - chromeLines
	}
	l, ok := chooseLayout(m.tui.CellWidth, m.game.Height(), m.game.Width(), availW, availH)
	if !ok {
		return m.renderTooSmall()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderBoard(l),
		strings.Repeat(" ", panelGap),
		m.renderPanel(),
	))
	b.WriteString("\n")
	b.WriteString(m.styles.status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderTooSmall() string {
	msg := m.styles.alert.Render("Window too small") + "\n" + "Please resize terminal"
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) renderTitle() string {
	return m.styles.title.Render("2048") + m.styles.label.Render(
		fmt.Sprintf("  %dx%d  seed %d", m.game.Height(), m.game.Width(), m.game.Seed()))
}

func (m Model) renderBoard(l layout) string {
	rows, cols := m.game.Height(), m.game.Width()
	w, h := l.boardSize(rows, cols)
	c := newCanvas(w, h)
	view := boardView{layout: l, rows: rows, cols: cols}
	view.draw(c, m.game.Board(), &m.anim)

	if m.game.GameOver() && !m.anim.active() {
		lines := []string{"GAME OVER", fmt.Sprintf("Score %d", m.game.Score())}
		if len(m.game.History()) > 0 {
			lines = append(lines, "z: undo  n: new")
		} else {
			lines = append(lines, "n: new game")
		}
		view.overlay(c, lines...)
	}
	return c.render(&m.styles)
}

func (m Model) renderPanel() string {
	st := m.styles
	field := func(label, value string) string {
		return st.label.Render(label) + "\n" + st.value.Render(value) + "\n\n"
	}

	var b strings.Builder
	b.WriteString(field("Score", fmt.Sprint(m.game.Score())))
	b.WriteString(field("Best tile", fmt.Sprint(m.game.MaxTile())))
	b.WriteString(field("Undo", fmt.Sprintf("%d/%d", len(m.game.History()), m.game.MaxHistory())))
	b.WriteString(st.label.Render("History"))
	for _, line := range historyText(m.game.History(), historyLines) {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return st.panel.Width(panelWidth + 2).Render(b.String())
}

// historyText lists undoable pushes, most recent first.
func historyText(history []engine.Direction, limit int) []string {
	if len(history) == 0 {
		return []string{"-"}
	}
	lines := make([]string, 0, min(len(history), limit)+1)
	for i, d := range history {
		if i == limit {
			lines = append(lines, fmt.Sprintf("+%d more", len(history)-limit))
			break
		}
		lines = append(lines, arrow(d)+" "+d.String())
	}
	return lines
}

func arrow(d engine.Direction) string {
	switch d {
	case engine.DirUp:
		return "↑"
	case engine.DirDown:
		return "↓"
	case engine.DirLeft:
		return "←"
	case engine.DirRight:
		return "→"
	}
	return "?"
}

// Game returns the game being played.
func (m Model) Game() *engine.Game {
	return m.game
}

// Moves returns the replay tokens of the current game.
func (m Model) Moves() string {
	return string(m.moves)
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the game screen in the alternate screen buffer.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
