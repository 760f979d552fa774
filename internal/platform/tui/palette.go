package tui

import (
	"math/bits"

	"github.com/charmbracelet/lipgloss"
)

// levelCount is the number of distinct tile colors. Level 0 is the empty
// cell; tiles from 4096 upward share the last level.
const levelCount = 13

// tileColors holds the background of each level, indexed by log2(value).
var tileColors = [levelCount]lipgloss.Color{
	"#ccc0b3", // empty
	"#eee4da", // 2
	"#ede0c8", // 4
	"#f2b179", // 8
	"#f59563", // 16
	"#f67c5f", // 32
	"#f65e3b", // 64
	"#edcf72", // 128
	"#edcc61", // 256
	"#edc850", // 512
	"#edc53f", // 1024
	"#edc22e", // 2048
	"#000000", // 4096 and above
}

const (
	darkText  = lipgloss.Color("#776e65")
	lightText = lipgloss.Color("#f9f6f2")
)

// tileLevel maps a tile value to its palette index.
func tileLevel(value int) int {
	if value <= 0 {
		return 0
	}
	level := bits.Len(uint(value)) - 1
	return min(level, levelCount-1)
}

// paint selects the style of a canvas cell.
type paint uint8

const (
	paintDefault paint = iota
	paintFrame
	paintOverlay
	paintTile // paintTile+level, then paintTile+levelCount+level when highlighted
)

const paintCount = paintTile + 2*levelCount

// tilePaint returns the paint for a tile of the given value.
func tilePaint(value int, highlight bool) paint {
	p := paintTile + paint(tileLevel(value))
	if highlight {
		p += levelCount
	}
	return p
}

// styles are built per renderer so SSH sessions get their own color profile.
type styles struct {
	paints [paintCount]lipgloss.Style
	title  lipgloss.Style
	panel  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
	alert  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var s styles
	s.paints[paintDefault] = r.NewStyle()
	s.paints[paintFrame] = r.NewStyle().Foreground(lipgloss.Color("#bbada0"))
	s.paints[paintOverlay] = r.NewStyle().Bold(true).
		Foreground(lightText).
		Background(lipgloss.Color("#8f7a66"))

	for level := range levelCount {
		fg := lightText
		if level <= 2 {
			fg = darkText
		}
		base := r.NewStyle().Bold(true).Background(tileColors[level]).Foreground(fg)
		s.paints[paintTile+paint(level)] = base
		s.paints[paintTile+levelCount+paint(level)] = base.Underline(true).Foreground(lipgloss.Color("#ffffff"))
	}

	s.title = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#edc22e"))
	s.panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	s.label = r.NewStyle().Foreground(lipgloss.Color("245"))
	s.value = r.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	s.status = r.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	s.help = r.NewStyle().Foreground(lipgloss.Color("241"))
	s.alert = r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	return s
}
