package tui

import "github.com/Princic-1837592/2048/internal/engine"

// animPhase is the current phase of the push animation.
type animPhase int

const (
	phaseNone animPhase = iota
	phaseSlide
	phasePop
)

// tileAnimation is one pre-push tile travelling to its destination.
// Tiles that do not move have from == to.
type tileAnimation struct {
	value    int
	from     engine.Coord
	to       engine.Coord
	progress float64 // 0.0 → 1.0
}

// animator turns a PushOutcome into frames: tiles slide from their origins,
// then merged cells and the spawned tile are highlighted.
type animator struct {
	slideTicks int
	popTicks   int

	phase   animPhase
	ticks   int
	tiles   []tileAnimation
	popping []engine.Coord
}

func newAnimator(slideTicks, popTicks int) animator {
	return animator{
		slideTicks: max(slideTicks, 0),
		popTicks:   max(popTicks, 0),
	}
}

func (a *animator) active() bool {
	return a.phase != phaseNone
}

// start begins animating a push. prev is the board before the push.
func (a *animator) start(prev [][]int, out engine.PushOutcome) {
	a.stop()

	dest := make(map[engine.Coord]engine.Coord)
	for r, row := range out.Moves {
		for c, p := range row {
			to := engine.Coord{Row: r, Col: c}
			for _, from := range p.Origins() {
				dest[from] = to
			}
			if p.Merged() {
				a.popping = append(a.popping, to)
			}
		}
	}
	a.popping = append(a.popping, out.Spawn)

	for r, row := range prev {
		for c, v := range row {
			if v == 0 {
				continue
			}
			from := engine.Coord{Row: r, Col: c}
			to, ok := dest[from]
			if !ok {
				to = from
			}
			a.tiles = append(a.tiles, tileAnimation{value: v, from: from, to: to})
		}
	}

	switch {
	case a.slideTicks > 0:
		a.phase = phaseSlide
	case a.popTicks > 0:
		a.phase = phasePop
	default:
		a.stop()
	}
}

// advance moves the animation forward one tick.
// Returns true if the animation is still in progress.
func (a *animator) advance() bool {
	if !a.active() {
		return false
	}

	a.ticks++

	var duration int
	switch a.phase {
	case phaseSlide:
		duration = a.slideTicks
	case phasePop:
		duration = a.popTicks
	}

	progress := min(float64(a.ticks)/float64(duration), 1.0)
	for i := range a.tiles {
		a.tiles[i].progress = progress
	}

	if a.ticks >= duration {
		a.finishPhase()
	}
	return a.active()
}

func (a *animator) finishPhase() {
	if a.phase == phaseSlide && a.popTicks > 0 {
		a.phase = phasePop
		a.ticks = 0
		return
	}
	a.stop()
}

func (a *animator) stop() {
	a.phase = phaseNone
	a.ticks = 0
	a.tiles = nil
	a.popping = nil
}

// highlighted reports whether the cell pops in the current frame.
func (a *animator) highlighted(at engine.Coord) bool {
	if a.phase != phasePop {
		return false
	}
	for _, c := range a.popping {
		if c == at {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// position returns the tile's current row and column in cell units.
func (t tileAnimation) position() (row, col float64) {
	k := easeOutQuad(t.progress)
	row = float64(t.from.Row) + float64(t.to.Row-t.from.Row)*k
	col = float64(t.from.Col) + float64(t.to.Col-t.from.Col)*k
	return row, col
}
