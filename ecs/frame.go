package ecs

// Frame is handed to every system during a pipeline run.
type Frame struct {
	// Tick counts completed pipeline runs.
	Tick     uint64
	Commands *Commands
	World    *World
}

func newFrame(world *World) *Frame {
	return &Frame{
		Commands: NewCommands(),
		World:    world,
	}
}
