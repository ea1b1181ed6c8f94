package ecs_test

import "github.com/plus3/skirmish/ecs"

// Common test component types
type Position struct {
	X, Y int32
}

type Velocity struct {
	DX, DY int32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

// Zero-size tags
type Frozen struct{}
type Player struct{}

type Score int32

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Frozen](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(newTestRegistry())
}
