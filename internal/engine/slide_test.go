package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, rows [][]int) Grid {
	t.Helper()
	g, err := gridFromRows(rows)
	require.NoError(t, err)
	return g
}

func rowCells(values []int) []cell {
	row := make([]cell, len(values))
	for i, v := range values {
		if v != 0 {
			row[i] = cell{value: v, from: From(Coord{Row: 0, Col: i})}
		}
	}
	return row
}

func rowValues(row []cell) []int {
	out := make([]int, len(row))
	for i, c := range row {
		out[i] = c.value
	}
	return out
}

func TestPushLeftRow(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4},
		{"double merge", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0},
		{"slide with gap", []int{0, 0, 2, 2}, []int{4, 0, 0, 0}, 4},
		{"slide with multiple gaps", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4},
		{"no change needed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0},
		{"empty row", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0},
		{"single tile", []int{0, 4, 0, 0}, []int{4, 0, 0, 0}, 0},
		{"merged result not re-merged", []int{4, 4, 8, 0}, []int{8, 8, 0, 0}, 8},
		{"wide row pairs from the left", []int{2, 2, 2, 2, 2, 0, 2}, []int{4, 4, 4, 0, 0, 0, 0}, 12},
		{"short row", []int{8, 0, 8}, []int{16, 0, 0}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rowCells(tt.input)
			score := pushLeft(row)
			require.Equal(t, tt.expected, rowValues(row))
			require.Equal(t, tt.score, score)
		})
	}
}

func TestCompactIsStable(t *testing.T) {
	row := rowCells([]int{0, 8, 0, 2, 0, 4})
	compact(row)

	require.Equal(t, []int{8, 2, 4, 0, 0, 0}, rowValues(row))
	require.True(t, row[0].from.Equal(From(Coord{0, 1})))
	require.True(t, row[1].from.Equal(From(Coord{0, 3})))
	require.True(t, row[2].from.Equal(From(Coord{0, 5})))
	for _, c := range row[3:] {
		require.Zero(t, c.from.Len())
	}
}

func TestSlideDirections(t *testing.T) {
	board := [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir      Direction
		expected [][]int
		score    int
	}{
		{DirLeft, [][]int{{4, 0, 0, 0}, {8, 0, 0, 0}, {4, 4, 0, 0}, {2, 0, 0, 0}}, 20},
		{DirRight, [][]int{{0, 0, 0, 4}, {0, 0, 0, 8}, {0, 0, 4, 4}, {0, 0, 0, 2}}, 20},
		{DirUp, [][]int{{2, 4, 4, 4}, {4, 0, 2, 0}, {2, 0, 0, 0}, {0, 0, 0, 0}}, 8},
		{DirDown, [][]int{{0, 0, 0, 0}, {2, 0, 0, 0}, {4, 0, 4, 0}, {2, 4, 2, 4}}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			g := mustGrid(t, board)
			res := Slide(g, tt.dir)
			require.Equal(t, tt.expected, res.Grid.Rows())
			require.Equal(t, tt.score, res.Score)
			require.True(t, res.Moved)
			require.Equal(t, board, g.Rows(), "input grid must not be modified")
		})
	}
}

func TestSlideNonSquare(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 0, 0, 0, 2},
		{2, 0, 4, 0, 0},
		{0, 0, 4, 0, 2},
	})

	up := Slide(g, DirUp)
	require.Equal(t, [][]int{
		{4, 0, 8, 0, 4},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}, up.Grid.Rows())

	down := Slide(g, DirDown)
	require.Equal(t, [][]int{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{4, 0, 8, 0, 4},
	}, down.Grid.Rows())

	right := Slide(g, DirRight)
	require.Equal(t, [][]int{
		{0, 0, 0, 0, 4},
		{0, 0, 0, 2, 4},
		{0, 0, 0, 4, 2},
	}, right.Grid.Rows())
}

func TestSlideNoChange(t *testing.T) {
	g := mustGrid(t, [][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Slide(g, DirLeft)
	require.False(t, res.Moved)
	require.Zero(t, res.Score)
	for _, row := range res.Moves {
		for _, p := range row {
			require.Zero(t, p.Len(), "stationary tiles carry no provenance")
		}
	}
}

func TestSlideProvenanceLeft(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 2, 2},
		{0, 0, 2, 2},
		{4, 2, 0, 0},
		{0, 8, 0, 8},
	})

	res := Slide(g, DirLeft)
	m := res.Moves

	require.True(t, m[0][0].Equal(From(Coord{0, 0}, Coord{0, 1})))
	require.True(t, m[0][1].Equal(From(Coord{0, 2}, Coord{0, 3})))
	require.Zero(t, m[0][2].Len())

	require.True(t, m[1][0].Equal(From(Coord{1, 2}, Coord{1, 3})))
	require.True(t, m[1][0].Merged())

	require.Zero(t, m[2][0].Len(), "tile at (2,0) did not move")
	require.Zero(t, m[2][1].Len(), "tile at (2,1) did not move")

	require.True(t, m[3][0].Equal(From(Coord{3, 1}, Coord{3, 3})))
}

func TestSlideProvenanceVertical(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 2, 0},
		{0, 0, 4},
		{2, 2, 0},
	})

	up := Slide(g, DirUp)
	require.Equal(t, [][]int{{2, 4, 4}, {0, 0, 0}, {0, 0, 0}}, up.Grid.Rows())
	require.True(t, up.Moves[0][0].Equal(From(Coord{2, 0})))
	require.True(t, up.Moves[0][1].Equal(From(Coord{0, 1}, Coord{2, 1})))
	require.True(t, up.Moves[0][2].Equal(From(Coord{1, 2})))

	down := Slide(g, DirDown)
	require.Equal(t, [][]int{{0, 0, 0}, {0, 0, 0}, {2, 4, 4}}, down.Grid.Rows())
	require.Zero(t, down.Moves[2][0].Len(), "tile at (2,0) stayed put")
	require.True(t, down.Moves[2][1].Equal(From(Coord{0, 1}, Coord{2, 1})))
	require.True(t, down.Moves[2][2].Equal(From(Coord{1, 2})))
}

func TestSlideProvenanceRight(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Slide(g, DirRight)
	require.True(t, res.Moves[0][3].Equal(From(Coord{0, 0})))
	origin, ok := res.Moves[0][3].First()
	require.True(t, ok)
	require.Equal(t, Coord{Row: 0, Col: 0}, origin)
}

func TestSlideScenarioBoards(t *testing.T) {
	start := mustGrid(t, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
		{0, 2, 0, 0},
	})

	left := Slide(start, DirLeft)
	require.Equal(t, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 0, 0},
		{2, 0, 0, 0},
	}, left.Grid.Rows())
	require.Zero(t, left.Score)

	afterSpawn := mustGrid(t, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 2, 0},
		{2, 0, 0, 0},
	})
	right := Slide(afterSpawn, DirRight)
	require.Equal(t, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
		{0, 0, 0, 2},
	}, right.Grid.Rows())
	require.Equal(t, 4, right.Score)
}

func TestSlidePreservesBoardSum(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 4, 8},
		{4, 4, 4, 4},
		{0, 2, 0, 2},
		{16, 0, 16, 32},
	})

	for _, d := range Directions {
		res := Slide(g, d)
		require.Equal(t, g.Sum(), res.Grid.Sum(), d.String())
	}
}
