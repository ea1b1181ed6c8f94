package battle

import (
	"fmt"
	"io"

	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/internal/radix"
	"gopkg.in/yaml.v3"
)

// Unit states reported in snapshots.
const (
	StateSpawning = "spawning"
	StateAlive    = "alive"
	StateDead     = "dead"
)

// Snapshot is the observable state of a scenario, units ordered by ID. Two
// runs with the same settings produce equal snapshots.
type Snapshot struct {
	Tick     uint64         `yaml:"tick"`
	Entities int            `yaml:"entities"`
	Orders   int            `yaml:"orders"`
	Stats    Stats          `yaml:"stats"`
	Units    []UnitSnapshot `yaml:"units"`
}

type UnitSnapshot struct {
	Entity   uint64    `yaml:"entity"`
	ID       uint32    `yaml:"id"`
	Seed     uint32    `yaml:"seed"`
	Counter  uint32    `yaml:"counter"`
	Tick     int       `yaml:"tick"`
	State    string    `yaml:"state"`
	Kind     string    `yaml:"kind,omitempty"`
	HP       int       `yaml:"hp,omitempty"`
	Position *Position `yaml:"position,omitempty"`
}

type unitAspect struct {
	ecs.Entity
	*Unit
	*Data
	Health   *Health   `ecs:"optional"`
	Position *Position `ecs:"optional"`
	Dead     *Dead     `ecs:"optional"`
	Spawn    *Spawn    `ecs:"optional"`
	NPC      *NPC      `ecs:"optional"`
	Hero     *Hero     `ecs:"optional"`
	Monster  *Monster  `ecs:"optional"`
}

// Snapshot captures the current world. It returns the zero Snapshot before
// Setup or after Cleanup.
func (c *Context) Snapshot() Snapshot {
	if c.world == nil || c.world.Closed() {
		return Snapshot{}
	}

	snap := Snapshot{
		Tick:     c.pipeline.Tick(),
		Entities: c.world.Len(),
		Orders:   ecs.PoolOf[AttackOrder](c.world).Len(),
		Stats:    c.Stats(),
	}

	var units []UnitSnapshot
	var keys []uint32
	for e, item := range ecs.NewView[unitAspect](c.world).Iter() {
		units = append(units, describeUnit(e, item))
		keys = append(keys, item.Unit.ID)
	}

	var sorter radix.Sorter
	snap.Units = make([]UnitSnapshot, 0, len(units))
	for _, idx := range sorter.Sort(keys) {
		snap.Units = append(snap.Units, units[idx])
	}
	return snap
}

func describeUnit(e ecs.Entity, item unitAspect) UnitSnapshot {
	u := UnitSnapshot{
		Entity:  uint64(e),
		ID:      item.Unit.ID,
		Seed:    item.Unit.Seed,
		Counter: item.Unit.Counter,
		Tick:    item.Data.Tick,
		State:   StateAlive,
	}

	switch {
	case item.Spawn != nil:
		u.State = StateSpawning
	case item.Dead != nil:
		u.State = StateDead
	}

	switch {
	case item.NPC != nil:
		u.Kind = KindNPC.String()
	case item.Hero != nil:
		u.Kind = KindHero.String()
	case item.Monster != nil:
		u.Kind = KindMonster.String()
	}

	if item.Health != nil {
		u.HP = item.Health.HP
	}
	if item.Position != nil {
		pos := *item.Position
		u.Position = &pos
	}
	return u
}

// WriteYAML encodes the snapshot as YAML.
func (s Snapshot) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}
