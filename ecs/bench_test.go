package ecs_test

import (
	"testing"

	"github.com/plus3/skirmish/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})
	}
}

func BenchmarkSpawnDestroy(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := world.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1}, Frozen{})
		world.Destroy(e)
	}
}

func BenchmarkGetComponent(b *testing.B) {
	world := newTestWorld()
	e, _ := world.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})
	pool := ecs.PoolOf[Position](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pool.Get(e)
	}
}

func BenchmarkQueryIteration(b *testing.B) {
	world := newTestWorld()
	for i := 0; i < 10000; i++ {
		if i%4 == 0 {
			world.Spawn(Position{X: int32(i)}, Velocity{DX: 1}, Frozen{})
			continue
		}
		world.Spawn(Position{X: int32(i)}, Velocity{DX: 1})
	}

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
		Frozen *Frozen `ecs:"exclude"`
	}](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.Execute()
		for item := range query.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}
