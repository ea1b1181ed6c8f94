package battle

import (
	"github.com/plus3/skirmish/internal/random"
)

// Loadout is everything a unit receives when it spawns.
type Loadout struct {
	Kind     UnitKind
	Health   Health
	Damage   Damage
	Sprite   Sprite
	Position Position
	Velocity Velocity
}

type statRange struct {
	hpMin, hpMax             int
	attackMin, attackMax     int
	cooldownMin, cooldownMax int
}

// NPCs never attack.
var kindStats = [...]statRange{
	KindNPC:     {hpMin: 40, hpMax: 80},
	KindHero:    {hpMin: 120, hpMax: 200, attackMin: 15, attackMax: 25, cooldownMin: 2, cooldownMax: 4},
	KindMonster: {hpMin: 80, hpMax: 160, attackMin: 10, attackMax: 20, cooldownMin: 3, cooldownMax: 6},
}

var kindGlyphs = [...]Glyph{
	KindNPC:     GlyphNPC,
	KindHero:    GlyphHero,
	KindMonster: GlyphMonster,
}

// SpawnUnit rolls a unit's loadout from its seed. It draws from the unit's
// stream, so Counter advances, and stamps SpawnTick with the current tick.
func SpawnUnit(data Data, unit *Unit, arena Arena) Loadout {
	unit.SpawnTick = data.Tick
	gen := random.New(unit.Seed)

	kind := UnitKind(gen.Random(&unit.Counter, len(kindStats)))
	stats := kindStats[kind]

	return Loadout{
		Kind: kind,
		Health: Health{
			HP: gen.Between(&unit.Counter, stats.hpMin, stats.hpMax),
		},
		Damage: Damage{
			Attack:   gen.Between(&unit.Counter, stats.attackMin, stats.attackMax),
			Cooldown: gen.Between(&unit.Counter, stats.cooldownMin, stats.cooldownMax),
		},
		Sprite: Sprite{Glyph: kindGlyphs[kind]},
		Position: Position{
			X: int32(gen.Random(&unit.Counter, int(arena.Width))),
			Y: int32(gen.Random(&unit.Counter, int(arena.Height))),
		},
		Velocity: Velocity{
			DX: int32(gen.Between(&unit.Counter, -1, 1)),
			DY: int32(gen.Between(&unit.Counter, -1, 1)),
		},
	}
}

// AttackTicks is the travel time of an attack between two cells: the
// Chebyshev distance divided by speed.
func AttackTicks(from, to Position, speed int) int {
	if speed <= 0 {
		speed = 1
	}
	dist := max(abs(from.X-to.X), abs(from.Y-to.Y))
	return int(dist) / speed
}

// Steer picks a heading for the current steering window of the unit's life.
// The heading bounces off arena edges.
func Steer(unit Unit, data Data, pos Position, arena Arena, interval int) Velocity {
	if interval <= 0 {
		interval = 1
	}
	window := uint32((data.Tick - unit.SpawnTick) / interval)
	h := random.StableHash32(unit.Seed^0x9e3779b9, window)

	v := Velocity{
		DX: int32(h%3) - 1,
		DY: int32((h/3)%3) - 1,
	}
	if next := pos.X + v.DX; next < 0 || next >= arena.Width {
		v.DX = -v.DX
	}
	if next := pos.Y + v.DY; next < 0 || next >= arena.Height {
		v.DY = -v.DY
	}
	return v
}

// ApplyDamage lands an attack on the target's health.
func ApplyDamage(h *Health, order AttackOrder) {
	h.HP -= order.Damage
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
