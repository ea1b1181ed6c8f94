package battle

import (
	"github.com/plus3/skirmish/internal/random"
)

// IndexSource draws target indices. Implementations must be pure in
// (seed, *counter) and advance the counter.
type IndexSource interface {
	NextIndex(seed uint32, counter *uint32, bound int) int
}

// Plotter receives one call per rendered unit. Out of range coordinates must
// be ignored.
type Plotter interface {
	Plot(x, y int, g Glyph)
}

// Arena bounds spawn positions and steering.
type Arena struct {
	Width  int32
	Height int32
}

// Params is the fixed configuration a scenario's systems are built with.
type Params struct {
	// RespawnTicks is how long a unit stays dead.
	RespawnTicks int
	// AttackSpeed is cells an attack travels per tick.
	AttackSpeed int
	// SteerInterval is how many ticks a unit keeps its heading.
	SteerInterval int
	Arena         Arena

	RNG      IndexSource
	Recorder AttackRecorder
}

// DefaultParams returns the stock scenario settings.
func DefaultParams() Params {
	return Params{
		RespawnTicks:  16,
		AttackSpeed:   4,
		SteerInterval: 8,
		Arena:         Arena{Width: 120, Height: 40},
		RNG:           random.Source{},
	}
}

func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.RespawnTicks <= 0 {
		p.RespawnTicks = def.RespawnTicks
	}
	if p.AttackSpeed <= 0 {
		p.AttackSpeed = def.AttackSpeed
	}
	if p.SteerInterval <= 0 {
		p.SteerInterval = def.SteerInterval
	}
	if p.Arena.Width <= 0 || p.Arena.Height <= 0 {
		p.Arena = def.Arena
	}
	if p.RNG == nil {
		p.RNG = def.RNG
	}
	return p
}
