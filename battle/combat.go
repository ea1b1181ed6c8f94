package battle

import (
	"fmt"

	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/internal/radix"
)

// DamageSystem counts in-flight attacks down and lands the ones that arrive.
// An order is destroyed on the tick it lands whether or not its target is
// still a valid recipient.
type DamageSystem struct {
	Orders ecs.Query[struct {
		ecs.Entity
		*AttackOrder
	}]
	Targets ecs.Query[struct {
		*Health
		*Damage
		Dead *Dead `ecs:"exclude"`
	}]
	Stats counters
}

func NewDamageSystem() *DamageSystem {
	return &DamageSystem{}
}

func (s *DamageSystem) Execute(frame *ecs.Frame) error {
	stats := s.Stats.Get()

	for e, item := range s.Orders.Iter() {
		order := item.AttackOrder
		remaining := order.Ticks
		order.Ticks--
		if remaining > 0 {
			continue
		}

		if target, ok := s.Targets.Get(order.Target); ok {
			ApplyDamage(target.Health, *order)
			stats.Hits++
		} else {
			stats.Misses++
		}
		frame.Commands.Destroy(e)
	}
	return nil
}

type candidate struct {
	entity   ecs.Entity
	id       uint32
	position Position
}

// AttackSystem picks targets for every unit whose cooldown is up. Candidates
// are ordered by Unit.ID before the draw so the choice does not depend on
// storage order.
type AttackSystem struct {
	Attackers ecs.Query[struct {
		ecs.Entity
		*Unit
		*Data
		*Damage
		*Position
		Dead  *Dead  `ecs:"exclude"`
		Spawn *Spawn `ecs:"exclude"`
	}]
	Stats counters

	rng         IndexSource
	recorder    AttackRecorder
	attackSpeed int

	sorter     radix.Sorter
	keys       []uint32
	candidates []candidate
}

func NewAttackSystem(params Params) *AttackSystem {
	params = params.withDefaults()
	return &AttackSystem{
		rng:         params.RNG,
		recorder:    params.Recorder,
		attackSpeed: params.AttackSpeed,
	}
}

func (s *AttackSystem) Execute(frame *ecs.Frame) error {
	count := s.Attackers.Len()
	if count == 0 {
		return nil
	}

	s.keys = s.keys[:0]
	s.candidates = s.candidates[:0]
	for e, item := range s.Attackers.Iter() {
		s.keys = append(s.keys, item.Unit.ID)
		s.candidates = append(s.candidates, candidate{
			entity:   e,
			id:       item.Unit.ID,
			position: *item.Position,
		})
	}
	indirection := s.sorter.Sort(s.keys)

	stats := s.Stats.Get()
	for e, item := range s.Attackers.Iter() {
		cooldown := item.Damage.Cooldown
		if cooldown <= 0 {
			continue
		}
		if (item.Data.Tick-item.Unit.SpawnTick)%cooldown != 0 {
			continue
		}

		idx := s.rng.NextIndex(item.Unit.Seed, &item.Unit.Counter, count)
		if idx < 0 || idx >= count {
			return fmt.Errorf("index source returned %d for %d candidates", idx, count)
		}
		target := s.candidates[indirection[idx]]
		order := AttackOrder{
			Target: target.entity,
			Damage: item.Damage.Attack,
			Ticks:  AttackTicks(*item.Position, target.position, s.attackSpeed),
		}
		frame.Commands.Spawn(order)
		stats.AttacksIssued++

		if s.recorder != nil {
			s.recorder.RecordAttack(AttackRecord{
				Tick:       item.Data.Tick,
				Attacker:   e,
				AttackerID: item.Unit.ID,
				Target:     target.entity,
				TargetID:   target.id,
				From:       *item.Position,
				To:         target.position,
				Damage:     order.Damage,
				Ticks:      order.Ticks,
			})
		}
	}
	return nil
}
