package ecs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type moveSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *moveSystem) Execute(frame *ecs.Frame) error {
	for item := range s.Movers.Values() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}
	return nil
}

type freezeSystem struct {
	Movers ecs.Query[struct {
		ecs.Entity
		*Position
		Frozen *Frozen `ecs:"exclude"`
	}]
	seen []int
}

func (s *freezeSystem) Execute(frame *ecs.Frame) error {
	s.seen = append(s.seen, s.Movers.Len())
	for e, item := range s.Movers.Iter() {
		if item.Position.X >= 2 {
			frame.Commands.AddComponent(e, Frozen{})
			frame.Commands.RemoveComponent(e, reflect.TypeFor[Velocity]())
		}
	}
	return nil
}

type countSystem struct {
	Counters ecs.Singleton[Counters]
	ticks    []uint64
}

func (s *countSystem) Execute(frame *ecs.Frame) error {
	s.Counters.Get().Spawned++
	s.ticks = append(s.ticks, frame.Tick)
	return nil
}

type failingSystem struct {
	err error
}

func (s *failingSystem) Execute(frame *ecs.Frame) error {
	frame.Commands.Spawn(Position{})
	return s.err
}

func TestPipelineRun(t *testing.T) {
	world := newTestWorld()
	e, err := world.Spawn(Position{}, Velocity{DX: 1, DY: 1})
	require.NoError(t, err)

	ecs.NewSingleton[Counters](world)

	freeze := &freezeSystem{}
	count := &countSystem{}
	pipeline := ecs.NewPipeline(world)
	pipeline.Register(&moveSystem{})
	pipeline.Register(freeze)
	pipeline.Register(count)

	for i := 0; i < 4; i++ {
		require.NoError(t, pipeline.Run())
	}

	pos, err := ecs.GetComponent[Position](world, e)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 2, Y: 2}, *pos)
	assert.True(t, ecs.HasComponent[Frozen](world, e))
	assert.False(t, ecs.HasComponent[Velocity](world, e))

	// the frozen entity drops out of the next run's query
	assert.Equal(t, []int{1, 1, 0, 0}, freeze.seen)
	assert.Equal(t, []uint64{0, 1, 2, 3}, count.ticks)
	assert.Equal(t, 4, count.Counters.Get().Spawned)
	assert.Equal(t, uint64(4), pipeline.Tick())
}

func TestPipelineFlushesBetweenSystems(t *testing.T) {
	world := newTestWorld()

	spawner := &failingSystem{}
	watcher := &freezeSystem{}
	pipeline := ecs.NewPipeline(world)
	pipeline.Register(spawner)
	pipeline.Register(watcher)

	require.NoError(t, pipeline.Run())
	assert.Equal(t, []int{1}, watcher.seen)
}

func TestPipelineErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	world := newTestWorld()

	boom := errors.New("boom")
	after := &countSystem{}
	pipeline := ecs.NewPipeline(world, ecs.WithLogger(zap.New(core)))
	pipeline.Register(&failingSystem{err: boom})
	pipeline.Register(after)

	err := pipeline.Run()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failingSystem")
	assert.Empty(t, after.ticks)
	assert.Equal(t, uint64(0), pipeline.Tick())

	// queued commands of the failed system are discarded
	assert.Equal(t, 0, world.Len())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "system failed", entry.Message)
	assert.Equal(t, "failingSystem", entry.ContextMap()["system"])
}

func TestPipelineClose(t *testing.T) {
	world := newTestWorld()
	pipeline := ecs.NewPipeline(world)
	pipeline.Register(&moveSystem{})

	pipeline.Close()
	assert.ErrorIs(t, pipeline.Run(), ecs.ErrWorldClosed)
}

func TestPipelineStats(t *testing.T) {
	world := newTestWorld()
	pipeline := ecs.NewPipeline(world)

	stats := pipeline.Stats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	ecs.NewSingleton[Counters](world)
	pipeline.Register(&moveSystem{})
	pipeline.Register(&countSystem{})

	for i := 0; i < 3; i++ {
		require.NoError(t, pipeline.Run())
	}

	stats = pipeline.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(3), stats.Runs)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "moveSystem", stats.Systems[0].Name)
	assert.Equal(t, "countSystem", stats.Systems[1].Name)

	for _, sys := range stats.Systems {
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.AvgDuration)
		assert.LessOrEqual(t, sys.AvgDuration, sys.MaxDuration)
	}
}

func TestPipelineRunEvery(t *testing.T) {
	world := newTestWorld()
	pipeline := ecs.NewPipeline(world)
	pipeline.Register(&moveSystem{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticks []uint64
	err := pipeline.RunEvery(ctx, time.Millisecond, func(tick uint64) error {
		ticks = append(ticks, tick)
		if tick == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ticks)

	stop := errors.New("stop")
	err = pipeline.RunEvery(context.Background(), time.Millisecond, func(uint64) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)

	err = pipeline.RunEvery(context.Background(), 0, nil)
	assert.ErrorContains(t, err, "interval")
}
