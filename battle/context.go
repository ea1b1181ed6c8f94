package battle

import (
	"errors"
	"fmt"

	"github.com/plus3/skirmish/ecs"
	"go.uber.org/zap"
)

// ErrNotSetUp is returned by Run before Setup.
var ErrNotSetUp = errors.New("battle: context not set up")

type seedAspect struct {
	*Spawn
	*Data
	*Unit
}

// Context drives one scenario instance through setup, ticks and cleanup.
type Context struct {
	params Params
	sink   Plotter
	logger *zap.Logger

	world    *ecs.World
	pipeline *ecs.Pipeline
	stats    *ecs.Singleton[Stats]
}

// NewContext creates a context. sink and logger may be nil.
func NewContext(params Params, sink Plotter, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		params: params.withDefaults(),
		sink:   sink,
		logger: logger,
	}
}

// Setup creates the world and entityCount seed entities. Entity i carries
// Spawn, a zero Data and Unit{ID: i, Seed: i}.
func (c *Context) Setup(entityCount int) error {
	if c.world != nil && !c.world.Closed() {
		return errors.New("battle: context already set up")
	}
	if entityCount < 0 {
		return fmt.Errorf("battle: negative entity count %d", entityCount)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	c.world = ecs.NewWorld(registry, ecs.WithEntityCapacity(entityCount))
	c.pipeline = NewPipeline(c.world, c.params, c.sink, c.logger)
	c.stats = ecs.NewSingleton[Stats](c.world)

	seeds := ecs.NewView[seedAspect](c.world)
	for i := 0; i < entityCount; i++ {
		_, err := seeds.Spawn(seedAspect{
			Spawn: &Spawn{},
			Data:  &Data{},
			Unit:  &Unit{ID: uint32(i), Seed: uint32(i)},
		})
		if err != nil {
			return fmt.Errorf("setup entity %d: %w", i, err)
		}
	}

	c.logger.Info("scenario set up",
		zap.Int("entities", entityCount),
		zap.Int("respawn_ticks", c.params.RespawnTicks),
		zap.Int("attack_speed", c.params.AttackSpeed))
	return nil
}

// Run advances the scenario by one pipeline run. tick is only used for error
// context; each entity keeps its own clock in Data.
func (c *Context) Run(tick int) error {
	if c.pipeline == nil {
		return ErrNotSetUp
	}
	if err := c.pipeline.Run(); err != nil {
		return fmt.Errorf("tick %d: %w", tick, err)
	}
	return nil
}

// Cleanup tears the world down. Later Run calls fail with ecs.ErrWorldClosed.
func (c *Context) Cleanup() {
	if c.pipeline == nil || c.world.Closed() {
		return
	}
	c.pipeline.Close()
	c.logger.Info("scenario cleaned up", zap.Uint64("ticks", c.pipeline.Tick()))
}

// World returns the scenario world, or nil before Setup.
func (c *Context) World() *ecs.World {
	return c.world
}

// Pipeline returns the scenario pipeline, or nil before Setup.
func (c *Context) Pipeline() *ecs.Pipeline {
	return c.pipeline
}

// Stats returns a copy of the event counters.
func (c *Context) Stats() Stats {
	if c.stats == nil {
		return Stats{}
	}
	if s := c.stats.Get(); s != nil {
		return *s
	}
	return Stats{}
}
