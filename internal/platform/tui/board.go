package tui

import (
	"math"
	"strconv"

	"github.com/Princic-1837592/2048/internal/engine"
)

// layout is the size of one board cell's interior in characters.
// Cells are separated by one-character grid lines.
type layout struct {
	cellW int
	cellH int
}

// boardSize returns the board's size in characters, borders included.
func (l layout) boardSize(rows, cols int) (w, h int) {
	return cols*(l.cellW+1) + 1, rows*(l.cellH+1) + 1
}

// chooseLayout picks the roomiest layout that fits in availW x availH.
// A zero size means the terminal size is not known yet and the first layout is used.
func chooseLayout(cellW, rows, cols, availW, availH int) (layout, bool) {
	candidates := []layout{
		{cellW: cellW, cellH: 3},
		{cellW: cellW, cellH: 1},
		{cellW: 5, cellH: 1},
		{cellW: 4, cellH: 1},
	}
	if availW == 0 && availH == 0 {
		return candidates[0], true
	}
	for _, l := range candidates {
		w, h := l.boardSize(rows, cols)
		if w <= availW && h <= availH {
			return l, true
		}
	}
	return layout{}, false
}

// boardView draws a board and its animation frame onto a canvas.
type boardView struct {
	layout layout
	rows   int
	cols   int
	x, y   int // Top-left corner on the canvas
}

func (b boardView) drawGrid(c *canvas) {
	l := b.layout
	w, h := l.boardSize(b.rows, b.cols)
	for dy := range h {
		for dx := range w {
			onRow := dy%(l.cellH+1) == 0
			onCol := dx%(l.cellW+1) == 0
			var r rune
			switch {
			case onRow && onCol:
				r = b.corner(dx/(l.cellW+1), dy/(l.cellH+1))
			case onRow:
				r = '─'
			case onCol:
				r = '│'
			default:
				continue
			}
			c.set(b.x+dx, b.y+dy, r, paintFrame)
		}
	}
	for r := range b.rows {
		for col := range b.cols {
			b.drawTile(c, float64(r), float64(col), 0, false)
		}
	}
}

// corner picks the box-drawing rune of the grid intersection at (x, y).
func (b boardView) corner(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == b.cols:
		return '┐'
	case y == b.rows && x == 0:
		return '└'
	case y == b.rows && x == b.cols:
		return '┘'
	case y == 0:
		return '┬'
	case y == b.rows:
		return '┴'
	case x == 0:
		return '├'
	case x == b.cols:
		return '┤'
	default:
		return '┼'
	}
}

// drawTile fills the interior of the cell at (row, col), which may be fractional
// while a tile slides, and centers its value.
func (b boardView) drawTile(c *canvas, row, col float64, value int, highlight bool) {
	l := b.layout
	px := b.x + int(math.Round(col*float64(l.cellW+1))) + 1
	py := b.y + int(math.Round(row*float64(l.cellH+1))) + 1
	p := tilePaint(value, highlight)
	c.fill(px, py, l.cellW, l.cellH, ' ', p)
	if value == 0 {
		return
	}

	label := strconv.Itoa(value)
	if len(label) > l.cellW {
		label = label[:l.cellW-1] + "+"
	}
	c.text(px+(l.cellW-len(label))/2, py+l.cellH/2, label, p)
}

// draw renders the board for the current frame: sliding tiles while the
// animation slides, otherwise the board with popping cells highlighted.
func (b boardView) draw(c *canvas, board [][]int, anim *animator) {
	b.drawGrid(c)

	if anim != nil && anim.phase == phaseSlide {
		for _, t := range anim.tiles {
			if t.from == t.to {
				b.drawTile(c, float64(t.from.Row), float64(t.from.Col), t.value, false)
			}
		}
		for _, t := range anim.tiles {
			if t.from != t.to {
				row, col := t.position()
				b.drawTile(c, row, col, t.value, false)
			}
		}
		return
	}

	for r, line := range board {
		for col, v := range line {
			if v == 0 {
				continue
			}
			at := engine.Coord{Row: r, Col: col}
			b.drawTile(c, float64(r), float64(col), v, anim != nil && anim.highlighted(at))
		}
	}
}

// overlay draws a centered message box over the board.
func (b boardView) overlay(c *canvas, lines ...string) {
	w, h := b.layout.boardSize(b.rows, b.cols)
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := min(maxLen+4, w)
	boxH := len(lines) + 2
	boxX := b.x + (w-boxW)/2
	boxY := b.y + (h-boxH)/2
	c.box(boxX, boxY, boxW, boxH, paintOverlay)

	for i, line := range lines {
		x := boxX + (boxW-len([]rune(line)))/2
		c.text(x, boxY+1+i, line, paintOverlay)
	}
}
