package engine

import "slices"

// cell pairs a tile value with the cells it came from during one push.
type cell struct {
	value int
	from  Provenance
}

// plane is the working buffer a push is computed on.
// Grid values and provenance travel together, so every transform,
// compaction swap and merge applies to both in lockstep.
type plane struct {
	height int
	width  int
	cells  []cell
}

func newPlane(g Grid) plane {
	p := plane{height: g.height, width: g.width, cells: make([]cell, len(g.cells))}
	for i, v := range g.cells {
		if v != 0 {
			p.cells[i] = cell{value: v, from: From(Coord{Row: i / g.width, Col: i % g.width})}
		}
	}
	return p
}

func (p *plane) row(r int) []cell {
	return p.cells[r*p.width : (r+1)*p.width]
}

// reverseRows mirrors every row. It is its own inverse.
func (p *plane) reverseRows() {
	for r := range p.height {
		slices.Reverse(p.row(r))
	}
}

// transpose swaps rows and columns. It is its own inverse.
func (p *plane) transpose() {
	out := make([]cell, len(p.cells))
	for r := range p.height {
		for c := range p.width {
			out[c*p.height+r] = p.cells[r*p.width+c]
		}
	}
	p.cells = out
	p.height, p.width = p.width, p.height
}

// normalize rotates the plane so that a push in d becomes a left push.
func (p *plane) normalize(d Direction) {
	switch d {
	case DirRight:
		p.reverseRows()
	case DirUp:
		p.transpose()
	case DirDown:
		p.transpose()
		p.reverseRows()
	}
}

// denormalize undoes normalize by applying the same involutions in reverse order.
func (p *plane) denormalize(d Direction) {
	switch d {
	case DirRight:
		p.reverseRows()
	case DirUp:
		p.transpose()
	case DirDown:
		p.reverseRows()
		p.transpose()
	}
}

// compact slides occupied cells toward index 0, keeping their order.
// Everything between the write cursor and i is empty, so each swap is stable.
func compact(row []cell) {
	w := 0
	for i := range row {
		if row[i].value == 0 {
			continue
		}
		if i != w {
			row[w], row[i] = row[i], row[w]
		}
		w++
	}
}

// mergeAdjacent doubles the left cell of every equal adjacent pair and
// empties the right one. A freshly merged cell is skipped, so no tile
// takes part in more than one merge per push.
func mergeAdjacent(row []cell) int {
	score := 0
	for i := 0; i+1 < len(row); i++ {
		if row[i].value == 0 {
			break
		}
		if row[i].value != row[i+1].value {
			continue
		}
		row[i].value *= 2
		row[i].from.absorb(row[i+1].from)
		row[i+1] = cell{}
		score += row[i].value
		i++
	}
	return score
}

// pushLeft runs compaction, merge and compaction again on one row.
// Returns the score gained from merges.
func pushLeft(row []cell) int {
	compact(row)
	score := mergeAdjacent(row)
	compact(row)
	return score
}

// SlideResult is the outcome of pushing a grid in one direction, before any spawn.
type SlideResult struct {
	Grid  Grid
	Moves [][]Provenance // Per destination cell; empty for cells whose tile stayed put
	Score int            // Sum of all merge results
	Moved bool           // Whether any cell changed
}

// Slide pushes all tiles of g in direction d and merges equal neighbours.
// g is not modified.
func Slide(g Grid, d Direction) SlideResult {
	p := newPlane(g)
	p.normalize(d)

	score := 0
	for r := range p.height {
		score += pushLeft(p.row(r))
	}

	p.denormalize(d)

	next := NewGrid(g.height, g.width)
	moves := make([][]Provenance, g.height)
	for r := range g.height {
		moves[r] = make([]Provenance, g.width)
	}
	for i, c := range p.cells {
		next.cells[i] = c.value
		at := Coord{Row: i / g.width, Col: i % g.width}
		if c.from.isSelf(at) {
			continue
		}
		moves[at.Row][at.Col] = c.from
	}

	return SlideResult{
		Grid:  next,
		Moves: moves,
		Score: score,
		Moved: !next.Equal(g),
	}
}
