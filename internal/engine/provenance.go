package engine

// Provenance records which pre-push cells the tile now occupying a cell came from.
// It holds zero, one or two origins: a merge never combines more than two tiles.
type Provenance struct {
	origins [2]Coord
	n       uint8
}

// From returns a provenance with the given origins. Extra origins beyond two are dropped.
func From(origins ...Coord) Provenance {
	var p Provenance
	for _, c := range origins {
		p.push(c)
	}
	return p
}

// Len returns the number of origins (0, 1 or 2).
func (p Provenance) Len() int {
	return int(p.n)
}

// Moved reports whether the cell received a tile from somewhere other than itself.
func (p Provenance) Moved() bool {
	return p.n > 0
}

// Merged reports whether the resident tile is the result of a merge.
func (p Provenance) Merged() bool {
	return p.n == 2
}

// Origins returns the origins in insertion order.
func (p Provenance) Origins() []Coord {
	out := make([]Coord, p.n)
	copy(out, p.origins[:p.n])
	return out
}

// First returns the first origin, if any.
func (p Provenance) First() (Coord, bool) {
	if p.n == 0 {
		return Coord{}, false
	}
	return p.origins[0], true
}

// Second returns the second origin, if any.
func (p Provenance) Second() (Coord, bool) {
	if p.n < 2 {
		return Coord{}, false
	}
	return p.origins[1], true
}

// Equal compares origins as an unordered set.
func (p Provenance) Equal(other Provenance) bool {
	if p.n != other.n {
		return false
	}
	switch p.n {
	case 0:
		return true
	case 1:
		return p.origins[0] == other.origins[0]
	default:
		return p.origins == other.origins ||
			(p.origins[0] == other.origins[1] && p.origins[1] == other.origins[0])
	}
}

// push appends an origin. A full pair ignores further origins.
func (p *Provenance) push(c Coord) {
	if p.n == 2 {
		return
	}
	p.origins[p.n] = c
	p.n++
}

// absorb concatenates other's origins onto p, capped at two.
func (p *Provenance) absorb(other Provenance) {
	for i := uint8(0); i < other.n; i++ {
		p.push(other.origins[i])
	}
}

// isSelf reports whether the only origin is the cell's own coordinate.
func (p Provenance) isSelf(at Coord) bool {
	return p.n == 1 && p.origins[0] == at
}
