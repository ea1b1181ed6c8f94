package battle

import "github.com/plus3/skirmish/ecs"

type MovementSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
		Dead *Dead `ecs:"exclude"`
	}]
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Execute(frame *ecs.Frame) error {
	for item := range s.Movers.Values() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}
	return nil
}

type UpdateVelocitySystem struct {
	Steering ecs.Query[struct {
		*Velocity
		*Unit
		*Data
		*Position
		Dead *Dead `ecs:"exclude"`
	}]

	arena    Arena
	interval int
}

func NewUpdateVelocitySystem(params Params) *UpdateVelocitySystem {
	params = params.withDefaults()
	return &UpdateVelocitySystem{
		arena:    params.Arena,
		interval: params.SteerInterval,
	}
}

func (s *UpdateVelocitySystem) Execute(frame *ecs.Frame) error {
	for item := range s.Steering.Values() {
		*item.Velocity = Steer(*item.Unit, *item.Data, *item.Position, s.arena, s.interval)
	}
	return nil
}

// UpdateDataSystem advances every entity clock. It runs last so every other
// system compares against the same tick.
type UpdateDataSystem struct {
	Clocks ecs.Query[struct {
		*Data
	}]
}

func NewUpdateDataSystem() *UpdateDataSystem {
	return &UpdateDataSystem{}
}

func (s *UpdateDataSystem) Execute(frame *ecs.Frame) error {
	for item := range s.Clocks.Values() {
		item.Data.Tick++
	}
	return nil
}
