package render_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/skirmish/battle"
	"github.com/plus3/skirmish/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestScreenSinkPlot(t *testing.T) {
	screen := newScreen(t, 10, 5)
	sink := render.NewScreenSink(screen)

	sink.Plot(1, 1, battle.GlyphHero)
	sink.Plot(2, 3, battle.GlyphMonster)
	sink.Plot(-1, 0, battle.GlyphNPC)
	sink.Plot(10, 0, battle.GlyphNPC)
	// bottom row is the status line
	sink.Plot(0, 4, battle.GlyphNPC)

	assert.Equal(t, 'H', runeAt(screen, 1, 1))
	assert.Equal(t, 'M', runeAt(screen, 2, 3))
	assert.NotEqual(t, 'n', runeAt(screen, 0, 4))

	_, _, style, _ := screen.GetContent(1, 1)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.ColorBlue, fg)

	sink.Clear()
	assert.NotEqual(t, 'H', runeAt(screen, 1, 1))
}

func TestScreenSinkStatus(t *testing.T) {
	screen := newScreen(t, 6, 3)
	sink := render.NewScreenSink(screen)

	sink.Status("tick 12345")
	got := make([]rune, 0, 6)
	for x := 0; x < 6; x++ {
		got = append(got, runeAt(screen, x, 2))
	}
	assert.Equal(t, "tick 1", string(got))
}

func TestScreenSinkDrivesBattle(t *testing.T) {
	screen := newScreen(t, 40, 15)
	sink := render.NewScreenSink(screen)

	params := battle.DefaultParams()
	params.Arena = battle.Arena{Width: 40, Height: 14}
	ctx := battle.NewContext(params, sink, nil)
	require.NoError(t, ctx.Setup(20))
	defer ctx.Cleanup()

	require.NoError(t, ctx.Run(0))
	sink.Present()

	drawn := 0
	for y := 0; y < 14; y++ {
		for x := 0; x < 40; x++ {
			switch runeAt(screen, x, y) {
			case 'n', 'H', 'M':
				drawn++
			}
		}
	}
	assert.Greater(t, drawn, 0)
	assert.LessOrEqual(t, drawn, 20)
}
