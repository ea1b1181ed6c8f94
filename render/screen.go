// Package render draws the battle on a terminal through tcell.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/skirmish/battle"
)

var glyphStyles = map[battle.Glyph]tcell.Style{
	battle.GlyphSpawn:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
	battle.GlyphGrave:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	battle.GlyphNPC:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
	battle.GlyphHero:    tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	battle.GlyphMonster: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

var statusStyle = tcell.StyleDefault.Reverse(true)

// ScreenSink plots glyphs on a tcell screen. The bottom row is kept for a
// status line.
type ScreenSink struct {
	screen tcell.Screen
}

func NewScreenSink(screen tcell.Screen) *ScreenSink {
	return &ScreenSink{screen: screen}
}

// Plot draws g at (x, y). Cells outside the arena area are ignored.
func (s *ScreenSink) Plot(x, y int, g battle.Glyph) {
	w, h := s.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h-1 {
		return
	}
	s.screen.SetContent(x, y, g.Rune(), nil, glyphStyles[g])
}

func (s *ScreenSink) Clear() {
	s.screen.Clear()
}

// Status replaces the status line.
func (s *ScreenSink) Status(text string) {
	w, h := s.screen.Size()
	if h == 0 {
		return
	}
	col := 0
	for _, r := range text {
		if col >= w {
			break
		}
		s.screen.SetContent(col, h-1, r, nil, statusStyle)
		col++
	}
	for ; col < w; col++ {
		s.screen.SetContent(col, h-1, ' ', nil, statusStyle)
	}
}

// Present flushes pending changes to the terminal.
func (s *ScreenSink) Present() {
	s.screen.Show()
}
