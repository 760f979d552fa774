package tui

import (
	"strings"
)

// glyph is one terminal cell of a canvas.
type glyph struct {
	r rune
	p paint
}

// canvas is a fixed-size character buffer with a paint per cell.
// Out-of-bounds writes are ignored.
type canvas struct {
	width  int
	height int
	cells  []glyph
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:  max(width, 0),
		height: max(height, 0),
	}
	c.cells = make([]glyph, c.width*c.height)
	c.clear()
	return c
}

func (c *canvas) clear() {
	for i := range c.cells {
		c.cells[i] = glyph{r: ' ', p: paintDefault}
	}
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = glyph{r: r, p: p}
}

func (c *canvas) get(x, y int) glyph {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return glyph{r: ' '}
	}
	return c.cells[y*c.width+x]
}

// text writes s starting at (x, y) and returns the number of runes written.
func (c *canvas) text(x, y int, s string, p paint) int {
	n := 0
	for _, r := range s {
		c.set(x+n, y, r, p)
		n++
	}
	return n
}

func (c *canvas) fill(x, y, w, h int, r rune, p paint) {
	for dy := range h {
		for dx := range w {
			c.set(x+dx, y+dy, r, p)
		}
	}
}

// box draws a single-line border around the rectangle and fills its inside.
func (c *canvas) box(x, y, w, h int, p paint) {
	if w < 2 || h < 2 {
		return
	}
	c.fill(x, y, w, h, ' ', p)
	for dx := 1; dx < w-1; dx++ {
		c.set(x+dx, y, '─', p)
		c.set(x+dx, y+h-1, '─', p)
	}
	for dy := 1; dy < h-1; dy++ {
		c.set(x, y+dy, '│', p)
		c.set(x+w-1, y+dy, '│', p)
	}
	c.set(x, y, '╭', p)
	c.set(x+w-1, y, '╮', p)
	c.set(x, y+h-1, '╰', p)
	c.set(x+w-1, y+h-1, '╯', p)
}

// String returns the canvas without styling.
func (c *canvas) String() string {
	var sb strings.Builder
	sb.Grow((c.width + 1) * c.height)
	for y := range c.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range c.width {
			sb.WriteRune(c.get(x, y).r)
		}
	}
	return sb.String()
}

// render converts the canvas to a styled string.
// Adjacent cells with the same paint share one style run.
func (c *canvas) render(st *styles) string {
	var sb strings.Builder
	sb.Grow(c.width*c.height*2 + c.height)

	var run strings.Builder
	for y := range c.height {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < c.width {
			start := c.get(x, y).p
			run.Reset()
			for x < c.width {
				g := c.get(x, y)
				if g.p != start {
					break
				}
				run.WriteRune(g.r)
				x++
			}
			sb.WriteString(st.paints[start].Render(run.String()))
		}
	}
	return sb.String()
}
