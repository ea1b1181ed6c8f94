package battle

import (
	"reflect"

	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/internal/random"
)

var spawnType = reflect.TypeFor[Spawn]()

// SpawnSystem turns Spawn-tagged seeds into full units.
type SpawnSystem struct {
	Spawning ecs.Query[struct {
		ecs.Entity
		*Spawn
		*Data
		*Unit
	}]
	Stats counters

	arena Arena
}

func NewSpawnSystem(params Params) *SpawnSystem {
	return &SpawnSystem{arena: params.withDefaults().Arena}
}

func (s *SpawnSystem) Execute(frame *ecs.Frame) error {
	stats := s.Stats.Get()
	cmds := frame.Commands

	for e, item := range s.Spawning.Iter() {
		loadout := SpawnUnit(*item.Data, item.Unit, s.arena)

		cmds.AddComponent(e, loadout.Health)
		cmds.AddComponent(e, loadout.Damage)
		cmds.AddComponent(e, loadout.Sprite)
		cmds.AddComponent(e, loadout.Position)
		cmds.AddComponent(e, loadout.Velocity)
		cmds.AddComponent(e, kindTag(loadout.Kind))
		cmds.RemoveComponent(e, spawnType)

		stats.Spawned++
	}
	return nil
}

func kindTag(kind UnitKind) any {
	switch kind {
	case KindHero:
		return Hero{}
	case KindMonster:
		return Monster{}
	}
	return NPC{}
}

// RespawnSystem replaces units whose death timer has run out with a fresh
// Spawn-tagged seed. The replacement is created at flush, so it is first seen
// by the next tick's SpawnSystem.
type RespawnSystem struct {
	Graves ecs.Query[struct {
		ecs.Entity
		*Dead
		*Data
		*Unit
	}]
	Stats counters
}

func NewRespawnSystem() *RespawnSystem {
	return &RespawnSystem{}
}

func (s *RespawnSystem) Execute(frame *ecs.Frame) error {
	stats := s.Stats.Get()

	for e, item := range s.Graves.Iter() {
		if item.Data.Tick < item.Unit.RespawnTick {
			continue
		}

		frame.Commands.Spawn(Spawn{}, *item.Data, Respawned(*item.Unit, *item.Data))
		frame.Commands.Destroy(e)
		stats.Respawned++
	}
	return nil
}

// Respawned returns the seed Unit of the next life of u.
func Respawned(u Unit, data Data) Unit {
	return Unit{
		ID:   u.ID | uint32(data.Tick)<<16,
		Seed: random.StableHash32(u.Seed, u.Counter),
	}
}

// KillSystem marks units without health as Dead and starts their respawn timer.
type KillSystem struct {
	Living ecs.Query[struct {
		ecs.Entity
		*Health
		*Data
		*Unit
		Dead *Dead `ecs:"exclude"`
	}]
	Stats counters

	respawnTicks int
}

func NewKillSystem(params Params) *KillSystem {
	return &KillSystem{respawnTicks: params.withDefaults().RespawnTicks}
}

func (s *KillSystem) Execute(frame *ecs.Frame) error {
	stats := s.Stats.Get()

	for e, item := range s.Living.Iter() {
		if item.Health.HP > 0 {
			continue
		}

		frame.Commands.AddComponent(e, Dead{})
		item.Unit.RespawnTick = item.Data.Tick + s.respawnTicks
		stats.Killed++
	}
	return nil
}
