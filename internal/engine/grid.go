package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Board size limits.
const (
	MinSize     = 3
	MaxSize     = 10
	DefaultSize = 4
)

// Coord identifies a board cell. Row 0 is the top row.
type Coord struct {
	Row int
	Col int
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is a height x width matrix of tile values stored row-major.
// Zero denotes an empty cell.
type Grid struct {
	height int
	width  int
	cells  []int
}

// NewGrid returns a zero-filled grid.
func NewGrid(height, width int) Grid {
	return Grid{
		height: height,
		width:  width,
		cells:  make([]int, height*width),
	}
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return g.height
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return g.width
}

// At returns the value at (row, col).
func (g Grid) At(row, col int) int {
	return g.cells[row*g.width+col]
}

// Set places a value at (row, col).
func (g Grid) Set(row, col, value int) {
	g.cells[row*g.width+col] = value
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return Grid{height: g.height, width: g.width, cells: cells}
}

// Equal reports whether both grids have the same shape and contents.
func (g Grid) Equal(other Grid) bool {
	if g.height != other.height || g.width != other.width {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Rows returns the grid as a freshly allocated slice of rows.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for r := range g.height {
		rows[r] = make([]int, g.width)
		copy(rows[r], g.cells[r*g.width:(r+1)*g.width])
	}
	return rows
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Coord {
	var cells []Coord
	for r := range g.height {
		for c := range g.width {
			if g.At(r, c) == 0 {
				cells = append(cells, Coord{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for _, v := range g.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func (g Grid) HasPossibleMerge() bool {
	for r := range g.height {
		for c := range g.width {
			val := g.At(r, c)
			if val == 0 {
				continue
			}
			if c < g.width-1 && g.At(r, c+1) == val {
				return true
			}
			if r < g.height-1 && g.At(r+1, c) == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if a push in some direction would change the grid.
func (g Grid) CanMove() bool {
	return g.HasEmptyCell() || g.HasPossibleMerge()
}

// MaxTile returns the maximum tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for _, v := range g.cells {
		total += v
	}
	return total
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// String renders the grid as space separated rows joined by newlines.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g.height {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.width {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(g.At(r, c)))
		}
	}
	return sb.String()
}

// gridFromRows validates rows and copies them into a Grid.
func gridFromRows(rows [][]int) (Grid, error) {
	height := len(rows)
	if height == 0 {
		return Grid{}, fmt.Errorf("%w: 0 rows", ErrInvalidDimensions)
	}
	width := len(rows[0])
	if err := checkDimensions(height, width); err != nil {
		return Grid{}, err
	}

	g := NewGrid(height, width)
	for r, row := range rows {
		if len(row) != width {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), width)
		}
		for c, v := range row {
			if v != 0 && (v < 2 || v&(v-1) != 0) {
				return Grid{}, fmt.Errorf("%w: value %d at %v is not a power of two", ErrInvalidBoard, v, Coord{r, c})
			}
			g.Set(r, c, v)
		}
	}
	return g, nil
}

func checkDimensions(height, width int) error {
	if height < MinSize || height > MaxSize || width < MinSize || width > MaxSize {
		return fmt.Errorf("%w: %dx%d (allowed %d..%d)", ErrInvalidDimensions, height, width, MinSize, MaxSize)
	}
	return nil
}
