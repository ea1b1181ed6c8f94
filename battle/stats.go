package battle

import "github.com/plus3/skirmish/ecs"

// Stats is a world singleton counting scenario events since setup.
type Stats struct {
	Spawned       int `yaml:"spawned"`
	Respawned     int `yaml:"respawned"`
	Killed        int `yaml:"killed"`
	AttacksIssued int `yaml:"attacks_issued"`
	Hits          int `yaml:"hits"`
	Misses        int `yaml:"misses"`
}

// counters binds the Stats singleton and creates it when the world has none
// yet, so a system can run on a pipeline of its own.
type counters struct {
	ecs.Singleton[Stats]
}

func (c *counters) Init(world *ecs.World) {
	c.Singleton = *ecs.NewSingleton[Stats](world)
}

// AttackRecord describes one AttackOrder at the moment it was issued.
type AttackRecord struct {
	Tick       int
	Attacker   ecs.Entity
	AttackerID uint32
	Target     ecs.Entity
	TargetID   uint32
	From       Position
	To         Position
	Damage     int
	Ticks      int
}

// AttackRecorder is notified of every issued attack, in issue order.
type AttackRecorder interface {
	RecordAttack(r AttackRecord)
}

// AttackLog is an AttackRecorder that keeps every record in memory.
type AttackLog struct {
	Records []AttackRecord
}

func (l *AttackLog) RecordAttack(r AttackRecord) {
	l.Records = append(l.Records, r)
}

// Reset drops all records and keeps the backing array.
func (l *AttackLog) Reset() {
	l.Records = l.Records[:0]
}
