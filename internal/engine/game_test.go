package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	for h := 0; h <= MaxSize+2; h++ {
		for w := 0; w <= MaxSize+2; w++ {
			g, err := New(h, w, 1, 42)
			inRange := h >= MinSize && h <= MaxSize && w >= MinSize && w <= MaxSize
			if !inRange {
				require.Nil(t, g, "%dx%d", h, w)
				require.True(t, errors.Is(err, ErrInvalidDimensions), "%dx%d", h, w)
				continue
			}
			require.NoError(t, err, "%dx%d", h, w)
			require.Equal(t, h, g.Height())
			require.Equal(t, w, g.Width())
			require.Equal(t, 2, g.grid.Count(), "%dx%d must start with two tiles", h, w)
			require.Zero(t, g.Score())
		}
	}
}

func TestNewRejectsNegativeHistory(t *testing.T) {
	_, err := New(4, 4, -1, 1)
	require.Error(t, err)
}

func TestNewRandomReportsSeed(t *testing.T) {
	g, err := NewRandom(4, 4, 0)
	require.NoError(t, err)

	again, err := New(4, 4, 0, g.Seed())
	require.NoError(t, err)
	require.Equal(t, g.Board(), again.Board())
}

func TestDeterministicSpawn(t *testing.T) {
	g1, err := New(5, 6, 3, 12345)
	require.NoError(t, err)
	g2, err := New(5, 6, 3, 12345)
	require.NoError(t, err)
	require.Equal(t, g1.Board(), g2.Board())

	for _, d := range []Direction{DirLeft, DirDown, DirRight, DirUp, DirLeft, DirDown} {
		o1, ok1 := g1.Push(d)
		o2, ok2 := g2.Push(d)
		require.Equal(t, ok1, ok2)
		require.Equal(t, o1, o2)
	}
	require.Equal(t, g1.Board(), g2.Board())
}

func TestSpawnValues(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		g, err := New(3, 3, 0, seed)
		require.NoError(t, err)
		for _, row := range g.Board() {
			for _, v := range row {
				require.Contains(t, []int{0, 2, 4}, v)
			}
		}
	}
}

func TestPushOutcome(t *testing.T) {
	g, err := FromBoard([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
	}, 2, 7)
	require.NoError(t, err)

	out, ok := g.Push(DirLeft)
	require.True(t, ok)
	require.Equal(t, DirLeft, out.Direction)
	require.Equal(t, 4, out.ScoreDelta)
	require.Equal(t, 4, out.Score)
	require.Equal(t, 4, g.Score())
	require.Contains(t, []int{2, 4}, out.SpawnValue)
	require.Equal(t, out.SpawnValue, g.Get(out.Spawn.Row, out.Spawn.Col))
	require.True(t, out.Moves[0][0].Merged())
	require.True(t, out.Moves[3][0].Equal(From(Coord{3, 3})))
	require.Zero(t, out.Moves[out.Spawn.Row][out.Spawn.Col].Len(), "spawned cell has no provenance")
	require.Equal(t, []Direction{DirLeft}, g.History())
}

func TestPushNoMovement(t *testing.T) {
	rows := [][]int{
		{4, 2, 0, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	g, err := FromBoard(rows, 3, 99)
	require.NoError(t, err)
	gen := g.gen

	for range 2 {
		out, ok := g.Push(DirLeft)
		require.False(t, ok)
		require.Equal(t, PushOutcome{}, out)
		require.Equal(t, rows, g.Board())
		require.Zero(t, g.Score())
		require.Empty(t, g.History())
		require.Equal(t, gen, g.gen, "generator must not advance")
	}
}

func TestPushInvalidDirection(t *testing.T) {
	g, err := New(4, 4, 2, 5)
	require.NoError(t, err)
	before := g.Board()

	_, ok := g.Push(Direction(17))
	require.False(t, ok)
	require.Equal(t, before, g.Board())
	require.Empty(t, g.History())
}

func TestUndoExactness(t *testing.T) {
	g, err := New(4, 4, 4, 2024)
	require.NoError(t, err)

	for _, d := range Directions {
		beforeBoard := g.Board()
		beforeScore := g.Score()
		beforeGen, err := g.gen.MarshalBinary()
		require.NoError(t, err)

		first, ok := g.Push(d)
		if !ok {
			continue
		}
		afterBoard := g.Board()

		require.True(t, g.Undo())
		require.Equal(t, beforeBoard, g.Board())
		require.Equal(t, beforeScore, g.Score())
		restoredGen, err := g.gen.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, beforeGen, restoredGen)

		second, ok := g.Push(d)
		require.True(t, ok)
		require.Equal(t, first, second)
		require.Equal(t, afterBoard, g.Board())
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	g, err := New(4, 4, 0, 1)
	require.NoError(t, err)
	require.False(t, g.Undo())

	for _, d := range Directions {
		g.Push(d)
	}
	require.Empty(t, g.History())
	require.False(t, g.Undo(), "max history 0 disables undo")
}

func TestBoundedHistory(t *testing.T) {
	const maxHistory = 3
	g, err := New(4, 4, maxHistory, 77)
	require.NoError(t, err)

	pushes := 0
	for i := 0; pushes < maxHistory+4 && i < 200; i++ {
		if _, ok := g.Push(Directions[i%len(Directions)]); ok {
			pushes++
		}
	}
	require.Greater(t, pushes, maxHistory)
	require.Len(t, g.History(), maxHistory)

	for range maxHistory {
		require.True(t, g.Undo())
	}
	require.False(t, g.Undo())
}

func TestUndoRestoresEachStep(t *testing.T) {
	g, err := New(4, 4, 10, 31337)
	require.NoError(t, err)

	var boards [][][]int
	var scores []int
	for i := 0; len(boards) < 6 && i < 100; i++ {
		board, score := g.Board(), g.Score()
		if _, ok := g.Push(Directions[i%len(Directions)]); ok {
			boards = append(boards, board)
			scores = append(scores, score)
		}
	}

	for i := len(boards) - 1; i >= 0; i-- {
		require.True(t, g.Undo())
		require.Equal(t, boards[i], g.Board())
		require.Equal(t, scores[i], g.Score())
	}
	require.False(t, g.Undo())
}

func TestScoreMonotonicAndSumConserved(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g, err := New(4, 4, 1, seed)
		require.NoError(t, err)

		for i := 0; i < 300 && !g.GameOver(); i++ {
			beforeScore := g.Score()
			beforeSum := g.grid.Sum()
			out, ok := g.Push(Directions[(i*7+int(seed))%len(Directions)])
			if !ok {
				require.Equal(t, beforeScore, g.Score())
				continue
			}
			require.GreaterOrEqual(t, g.Score(), beforeScore)
			require.Equal(t, beforeScore+out.ScoreDelta, g.Score())
			require.Equal(t, beforeSum+out.SpawnValue, g.grid.Sum())
		}
	}
}

func TestUndoRestoresLoadedBoard(t *testing.T) {
	g, err := FromBoard([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 2, 0},
		{2, 0, 0, 0},
	}, 2, 10126721102020240073)
	require.NoError(t, err)
	postLeft := g.Board()

	out, ok := g.Push(DirRight)
	require.True(t, ok)
	require.Equal(t, 4, out.Score)
	require.Equal(t, 4, g.Get(2, 3))
	require.Equal(t, 2, g.Get(3, 3))

	require.True(t, g.Undo())
	require.Equal(t, postLeft, g.Board())
	require.Zero(t, g.Score())
}

func TestGameOver(t *testing.T) {
	g, err := FromBoard([][]int{
		{2, 4, 8},
		{4, 8, 2},
		{8, 2, 4},
	}, 1, 1)
	require.NoError(t, err)
	require.True(t, g.GameOver())
	require.Equal(t, StateGameOver, g.Snapshot().State)

	for _, d := range Directions {
		_, ok := g.Push(d)
		require.False(t, ok)
	}
}

func TestFromBoardValidation(t *testing.T) {
	_, err := FromBoard([][]int{{2, 0, 0}, {0, 0}, {0, 0, 0}}, 0, 1)
	require.ErrorIs(t, err, ErrInvalidBoard)

	_, err = FromBoard([][]int{{3, 0, 0}, {0, 0, 0}, {0, 0, 0}}, 0, 1)
	require.ErrorIs(t, err, ErrInvalidBoard)

	_, err = FromBoard([][]int{{0, 0}, {0, 0}}, 0, 1)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = FromBoard(nil, 0, 1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestBoardReturnsCopy(t *testing.T) {
	g, err := New(3, 3, 0, 3)
	require.NoError(t, err)

	b := g.Board()
	b[0][0] = 2048
	require.NotEqual(t, 2048, g.Get(0, 0))
}

func TestSnapshot(t *testing.T) {
	g, err := New(4, 5, 2, 42)
	require.NoError(t, err)

	snap := g.Snapshot()
	require.Equal(t, 4, snap.Height)
	require.Equal(t, 5, snap.Width)
	require.Equal(t, uint64(42), snap.Seed)
	require.Equal(t, 2, snap.MaxHistory)
	require.Zero(t, snap.UndoDepth)
	require.Equal(t, StatePlaying, snap.State)
	require.Contains(t, []int{2, 4}, snap.MaxTile)
}
