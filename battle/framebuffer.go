package battle

import "strings"

// Framebuffer is an in-memory Plotter, one glyph per arena cell.
type Framebuffer struct {
	width  int
	height int
	cells  []Glyph
}

func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		width:  width,
		height: height,
		cells:  make([]Glyph, width*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Plot writes g at (x, y). Coordinates outside the buffer are ignored.
func (f *Framebuffer) Plot(x, y int, g Glyph) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.cells[y*f.width+x] = g
}

// At returns the glyph at (x, y), or GlyphEmpty outside the buffer.
func (f *Framebuffer) At(x, y int) Glyph {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return GlyphEmpty
	}
	return f.cells[y*f.width+x]
}

func (f *Framebuffer) Clear() {
	clear(f.cells)
}

// Count returns how many cells hold g.
func (f *Framebuffer) Count(g Glyph) int {
	n := 0
	for _, c := range f.cells {
		if c == g {
			n++
		}
	}
	return n
}

func (f *Framebuffer) String() string {
	var b strings.Builder
	b.Grow((f.width + 1) * f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			b.WriteRune(f.cells[y*f.width+x].Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
