package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/skirmish/ecs"
)

// ExampleView shows reading entities through an aspect with an excluded tag.
func ExampleView() {
	world := newTestWorld()
	world.Spawn(Position{X: 1, Y: 1}, Name{Value: "alpha"})
	world.Spawn(Position{X: 2, Y: 2}, Name{Value: "bravo"}, Frozen{})
	world.Spawn(Position{X: 3, Y: 3}, Name{Value: "charlie"})

	view := ecs.NewView[struct {
		*Position
		*Name
		Frozen *Frozen `ecs:"exclude"`
	}](world)

	for item := range view.Values() {
		fmt.Printf("%s at (%d, %d)\n", item.Name.Value, item.Position.X, item.Position.Y)
	}

	// Output:
	// alpha at (1, 1)
	// charlie at (3, 3)
}

type gravity struct {
	Falling ecs.Query[struct {
		ecs.Entity
		*Position
		*Velocity
	}]
}

func (g *gravity) Execute(frame *ecs.Frame) error {
	for e, item := range g.Falling.Iter() {
		item.Position.Y += item.Velocity.DY
		if item.Position.Y <= 0 {
			frame.Commands.RemoveComponent(e, reflect.TypeFor[Velocity]())
		}
	}
	return nil
}

// ExamplePipeline runs a system until its query drains.
func ExamplePipeline() {
	world := newTestWorld()
	e, _ := world.Spawn(Position{Y: 3}, Velocity{DY: -1})

	pipeline := ecs.NewPipeline(world)
	pipeline.Register(&gravity{})

	for i := 0; i < 5; i++ {
		if err := pipeline.Run(); err != nil {
			fmt.Println(err)
			return
		}
		pos, _ := ecs.GetComponent[Position](world, e)
		fmt.Printf("tick %d: y=%d falling=%v\n", pipeline.Tick(), pos.Y, ecs.HasComponent[Velocity](world, e))
	}

	// Output:
	// tick 1: y=2 falling=true
	// tick 2: y=1 falling=true
	// tick 3: y=0 falling=false
	// tick 4: y=0 falling=false
	// tick 5: y=0 falling=false
}

// ExampleCommands shows that queued changes only land on Flush.
func ExampleCommands() {
	world := newTestWorld()
	victim, _ := world.Spawn(Position{})

	cmds := ecs.NewCommands()
	cmds.Destroy(victim)
	cmds.Spawn(Position{X: 9})
	fmt.Println("before flush:", world.Len(), world.IsAlive(victim))

	if err := cmds.Flush(world); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("after flush:", world.Len(), world.IsAlive(victim))

	// Output:
	// before flush: 1 true
	// after flush: 1 false
}
