package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Princic-1837592/2048/internal/config"
	"github.com/Princic-1837592/2048/internal/engine"
	"github.com/Princic-1837592/2048/internal/storage"
)

// memScores is an in-memory score store.
type memScores struct {
	mu      sync.Mutex
	entries []storage.ScoreEntry
}

func (m *memScores) SaveScore(e storage.ScoreEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return int64(len(m.entries)), nil
}

func (m *memScores) TopScores(board string, limit int) ([]storage.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.ScoreEntry
	for _, e := range m.entries {
		if e.Board() == board && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memScores) GetAllBoardStats() (map[string]*storage.BoardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := make(map[string]*storage.BoardStats)
	for _, e := range m.entries {
		st, ok := stats[e.Board()]
		if !ok {
			st = &storage.BoardStats{Board: e.Board()}
			stats[e.Board()] = st
		}
		st.GamesCount++
		st.HighScore = max(st.HighScore, e.Score)
	}
	return stats, nil
}

func testOptions(height, width, history int, seed uint64) Options {
	return Options{
		Board: config.BoardConfig{Height: height, Width: width, MaxHistory: history, Seed: seed},
		TUI:   config.TUIConfig{TickRate: 60, CellWidth: 6},
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", updated)
	}
	return next, cmd
}

// pushUntilMoved tries every direction until one changes the board.
func pushUntilMoved(t *testing.T, m Model) (Model, engine.Direction) {
	t.Helper()
	keys := map[engine.Direction]tea.KeyMsg{
		engine.DirLeft:  {Type: tea.KeyLeft},
		engine.DirRight: {Type: tea.KeyRight},
		engine.DirUp:    {Type: tea.KeyUp},
		engine.DirDown:  {Type: tea.KeyDown},
	}
	for _, d := range engine.Directions {
		before := len(m.Moves())
		m, _ = press(t, m, keys[d])
		if len(m.Moves()) > before {
			return m, d
		}
	}
	t.Fatal("no direction moved the board")
	return m, 0
}

// collect runs cmd and any batched commands, skipping animation ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, testOptions(4, 5, 2, 11))

	if m.Game().Seed() != 11 {
		t.Errorf("Seed() = %d, expected 11", m.Game().Seed())
	}
	if m.Game().Height() != 4 || m.Game().Width() != 5 {
		t.Errorf("board = %dx%d, expected 4x5", m.Game().Height(), m.Game().Width())
	}
	if m.Moves() != "" {
		t.Errorf("Moves() = %q, expected empty", m.Moves())
	}
	if m.Init() != nil {
		t.Error("Init should not schedule commands")
	}

	if _, err := NewModel(testOptions(2, 4, 1, 1)); err == nil {
		t.Error("NewModel should reject a 2x4 board")
	}
}

func TestPushAndUndo(t *testing.T) {
	m := newTestModel(t, testOptions(4, 4, 2, 11))
	board := m.Game().Board()

	m, d := pushUntilMoved(t, m)
	if !strings.HasSuffix(m.Moves(), string(d.Token())) {
		t.Errorf("Moves() = %q, expected to end with %c", m.Moves(), d.Token())
	}
	if got := m.Game().History(); len(got) != 1 || got[0] != d {
		t.Errorf("History() = %v, expected [%v]", got, d)
	}

	m, _ = press(t, m, runeKey("z"))
	if !strings.HasSuffix(m.Moves(), "z") {
		t.Errorf("Moves() = %q, expected undo token", m.Moves())
	}
	after := m.Game().Board()
	for r := range board {
		for c := range board[r] {
			if after[r][c] != board[r][c] {
				t.Fatalf("undo did not restore the board: %v, expected %v", after, board)
			}
		}
	}

	moves := m.Moves()
	m, _ = press(t, m, runeKey("z"))
	if m.Moves() != moves {
		t.Error("an undo with empty history should not be recorded")
	}
	if m.status != "Nothing to undo" {
		t.Errorf("status = %q", m.status)
	}
}

func TestMovesReplay(t *testing.T) {
	m := newTestModel(t, testOptions(4, 4, 3, 99))
	for range 6 {
		m, _ = pushUntilMoved(t, m)
	}
	m, _ = press(t, m, runeKey("z"))
	m, _ = pushUntilMoved(t, m)

	replayed, _, err := engine.Replay(4, 4, 3, 99, m.Moves())
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if replayed.Score() != m.Game().Score() || replayed.Grid().String() != m.Game().Grid().String() {
		t.Errorf("replay of %q diverged:\n%s\nexpected\n%s", m.Moves(), replayed.Grid(), m.Game().Grid())
	}
}

func TestNewGameKey(t *testing.T) {
	m := newTestModel(t, testOptions(4, 4, 1, 11))
	m, _ = pushUntilMoved(t, m)
	old := m.Game()

	m, _ = press(t, m, runeKey("n"))
	if m.Game() == old {
		t.Error("n should start a new game")
	}
	if m.Moves() != "" || m.Game().Score() != 0 {
		t.Error("new game should start with no moves and no score")
	}
	if m.Game().Height() != 4 || m.Game().MaxHistory() != 1 {
		t.Error("new game should keep the configured board")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, testOptions(4, 4, 1, 11))
	m, cmd := press(t, m, runeKey("q"))

	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestGameOverSavesScoreOnce(t *testing.T) {
	store := &memScores{}
	opts := testOptions(3, 3, 0, 5)
	opts.Store = store
	opts.Player = "alice"
	m := newTestModel(t, opts)

	dirs := []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyUp}, {Type: tea.KeyRight}, {Type: tea.KeyDown}}
	var msgs []tea.Msg
	for i := 0; i < 20000 && !m.Game().GameOver(); i++ {
		var cmd tea.Cmd
		m, cmd = press(t, m, dirs[i%len(dirs)])
		msgs = append(msgs, collect(cmd)...)
	}
	if !m.Game().GameOver() {
		t.Fatal("3x3 game should end")
	}

	// Pushing after the end changes nothing and saves nothing.
	for _, k := range dirs {
		var cmd tea.Cmd
		m, cmd = press(t, m, k)
		msgs = append(msgs, collect(cmd)...)
	}

	if len(store.entries) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(store.entries))
	}
	e := store.entries[0]
	if e.Player != "alice" || e.Seed != 5 || e.Score != m.Game().Score() || e.Moves != m.Moves() {
		t.Errorf("saved entry = %+v", e)
	}

	if len(msgs) != 1 {
		t.Fatalf("got %d messages, expected 1", len(msgs))
	}
	m, _ = press(t, m, msgs[0])
	if !strings.Contains(m.status, "#1") {
		t.Errorf("status = %q, expected the saved game id", m.status)
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("finished game should show the game over overlay")
	}
}

func TestAnimationTicks(t *testing.T) {
	opts := testOptions(4, 4, 1, 11)
	opts.TUI.Animate = true
	opts.TUI.SlideTick = 2
	opts.TUI.PopTicks = 1
	m := newTestModel(t, opts)

	m, _ = pushUntilMoved(t, m)
	if !m.anim.active() || !m.ticking {
		t.Fatal("push should start the animation")
	}

	ticks := 0
	for m.ticking {
		var cmd tea.Cmd
		m, cmd = press(t, m, TickMsg(time.Now()))
		ticks++
		if ticks > 10 {
			t.Fatal("animation did not finish")
		}
		if (cmd == nil) == m.anim.active() {
			t.Fatalf("tick %d: command scheduled = %v while active = %v", ticks, cmd != nil, m.anim.active())
		}
	}
	if ticks != 3 {
		t.Errorf("animation took %d ticks, expected 3", ticks)
	}
}

func TestUndoStopsAnimation(t *testing.T) {
	opts := testOptions(4, 4, 1, 11)
	opts.TUI.Animate = true
	opts.TUI.SlideTick = 5
	m := newTestModel(t, opts)

	m, _ = pushUntilMoved(t, m)
	m, _ = press(t, m, runeKey("z"))
	if m.anim.active() {
		t.Error("undo should stop the animation")
	}

	// The tick already in flight ends the chain.
	m, cmd := press(t, m, TickMsg(time.Now()))
	if cmd != nil || m.ticking {
		t.Error("tick chain should stop once the animation is gone")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, testOptions(4, 4, 2, 11))
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	for _, want := range []string{"2048", "Score", "Best tile", "Undo", "History", "seed 11", "undo"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("small window should show the resize hint")
	}
}

func TestHistoryText(t *testing.T) {
	if got := historyText(nil, 3); len(got) != 1 || got[0] != "-" {
		t.Errorf("historyText(nil) = %v", got)
	}

	hist := []engine.Direction{engine.DirUp, engine.DirLeft, engine.DirDown, engine.DirRight, engine.DirUp}
	got := historyText(hist, 3)
	expected := []string{"↑ Up", "← Left", "↓ Down", "+2 more"}
	if len(got) != len(expected) {
		t.Fatalf("historyText = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestScoresKey(t *testing.T) {
	m := newTestModel(t, testOptions(4, 4, 1, 11))
	m, _ = press(t, m, runeKey("t"))
	if m.scoreboard != nil {
		t.Fatal("scoreboard should not open without a reader")
	}

	store := &memScores{}
	store.SaveScore(storage.ScoreEntry{Player: "bob", Height: 4, Width: 4, Score: 512, MaxTile: 64})
	opts := testOptions(4, 4, 1, 11)
	opts.Scores = store
	m = newTestModel(t, opts)

	m, _ = press(t, m, runeKey("t"))
	if m.scoreboard == nil {
		t.Fatal("t should open the scoreboard")
	}
	view := m.View()
	if !strings.Contains(view, "HIGH SCORES - 4x4") || !strings.Contains(view, "bob") {
		t.Errorf("scoreboard view = %q", view)
	}

	m, _ = press(t, m, runeKey("q"))
	if m.scoreboard != nil || m.IsQuitting() {
		t.Error("q in the scoreboard should return to the game")
	}
}
