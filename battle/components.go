// Package battle is the combat scenario run on top of the ecs engine: units
// spawn, wander, pick targets, trade delayed hits, die and respawn with a
// mutated seed. Every tick is a pure function of the previous world state.
package battle

import (
	"github.com/plus3/skirmish/ecs"
)

// Position is a cell on the arena grid.
type Position struct {
	X, Y int32
}

// Velocity is added to Position once per tick.
type Velocity struct {
	DX, DY int32
}

// Glyph is what a unit looks like on the render sink.
type Glyph uint8

const (
	GlyphEmpty Glyph = iota
	GlyphSpawn
	GlyphGrave
	GlyphNPC
	GlyphHero
	GlyphMonster
)

func (g Glyph) String() string {
	switch g {
	case GlyphSpawn:
		return "spawn"
	case GlyphGrave:
		return "grave"
	case GlyphNPC:
		return "npc"
	case GlyphHero:
		return "hero"
	case GlyphMonster:
		return "monster"
	}
	return "empty"
}

// Rune is the character used by text sinks.
func (g Glyph) Rune() rune {
	switch g {
	case GlyphSpawn:
		return '*'
	case GlyphGrave:
		return '+'
	case GlyphNPC:
		return 'n'
	case GlyphHero:
		return 'H'
	case GlyphMonster:
		return 'M'
	}
	return ' '
}

type Sprite struct {
	Glyph Glyph
}

// Unit identifies a unit and carries its random stream. Counter only grows.
type Unit struct {
	ID          uint32
	Seed        uint32
	Counter     uint32
	SpawnTick   int
	RespawnTick int
}

// Data is the per-entity clock.
type Data struct {
	Tick int
}

type Health struct {
	HP int
}

type Damage struct {
	Attack   int
	Cooldown int
}

// AttackOrder is an in-flight hit. It lives on its own entity and lands once
// Ticks has counted down.
type AttackOrder struct {
	Target ecs.Entity
	Damage int
	Ticks  int
}

// Tags.
type (
	Spawn   struct{}
	Dead    struct{}
	NPC     struct{}
	Hero    struct{}
	Monster struct{}
)

// UnitKind selects the stat table and tag of a spawned unit.
type UnitKind uint8

const (
	KindNPC UnitKind = iota
	KindHero
	KindMonster
)

func (k UnitKind) String() string {
	switch k {
	case KindNPC:
		return "npc"
	case KindHero:
		return "hero"
	case KindMonster:
		return "monster"
	}
	return "unknown"
}

// RegisterComponents adds every scenario component and tag to r.
func RegisterComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Sprite](r)
	ecs.RegisterComponent[Unit](r)
	ecs.RegisterComponent[Data](r)
	ecs.RegisterComponent[Health](r)
	ecs.RegisterComponent[Damage](r)
	ecs.RegisterComponent[AttackOrder](r)
	ecs.RegisterComponent[Spawn](r)
	ecs.RegisterComponent[Dead](r)
	ecs.RegisterComponent[NPC](r)
	ecs.RegisterComponent[Hero](r)
	ecs.RegisterComponent[Monster](r)
}
