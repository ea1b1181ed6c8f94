package battle

import (
	"github.com/plus3/skirmish/ecs"
	"go.uber.org/zap"
)

// NewPipeline builds the scenario pipeline over world in its fixed order. It
// makes sure the Stats singleton exists. sink may be nil.
func NewPipeline(world *ecs.World, params Params, sink Plotter, logger *zap.Logger) *ecs.Pipeline {
	params = params.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	ecs.NewSingleton[Stats](world)

	pipeline := ecs.NewPipeline(world, ecs.WithLogger(logger))
	pipeline.Register(NewSpawnSystem(params))
	pipeline.Register(NewRespawnSystem())
	pipeline.Register(NewKillSystem(params))
	pipeline.Register(NewRenderSystem(sink))
	pipeline.Register(NewSpriteSystem())
	pipeline.Register(NewDamageSystem())
	pipeline.Register(NewAttackSystem(params))
	pipeline.Register(NewMovementSystem())
	pipeline.Register(NewUpdateVelocitySystem(params))
	pipeline.Register(NewUpdateDataSystem())
	return pipeline
}
