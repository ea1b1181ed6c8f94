package ecs

import (
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Commands provides a buffer for deferred structural operations. The Pipeline
// flushes it after every system, so a system never observes its own changes
// while iterating and the next system observes all of them.
type Commands struct {
	spawns   []spawnCommand
	destroys []Entity
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []deferCommand

	destroyed *intmap.Map[Entity, struct{}]
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{
		destroyed: intmap.New[Entity, struct{}](64),
	}
}

type deferCommand struct {
	fn func() error
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues a function to run after all structural operations of the flush.
func (c *Commands) Defer(fn func() error) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues the creation of an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity Entity) {
	c.destroys = append(c.destroys, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len reports how many operations are queued.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the queued operations to world in the order destroys, removes,
// adds, spawns, defers, and resets the buffer. Adds and removes targeting an
// entity destroyed by the same flush are dropped, as are repeated destroys of
// the same entity. The first failure aborts the flush; the buffer is reset
// either way.
func (c *Commands) Flush(world *World) error {
	defer c.Reset()

	for _, e := range c.destroys {
		if _, gone := c.destroyed.Get(e); gone {
			continue
		}
		if err := world.Destroy(e); err != nil {
			return fmt.Errorf("flush destroy: %w", err)
		}
		c.destroyed.Put(e, struct{}{})
	}

	for _, cmd := range c.removes {
		if _, gone := c.destroyed.Get(cmd.entity); gone {
			continue
		}
		if err := world.Remove(cmd.entity, cmd.compType); err != nil {
			return fmt.Errorf("flush remove: %w", err)
		}
	}

	for _, cmd := range c.adds {
		if _, gone := c.destroyed.Get(cmd.entity); gone {
			continue
		}
		if err := world.Add(cmd.entity, cmd.component); err != nil {
			return fmt.Errorf("flush add: %w", err)
		}
	}

	for _, cmd := range c.spawns {
		if _, err := world.Spawn(cmd.components...); err != nil {
			return fmt.Errorf("flush spawn: %w", err)
		}
	}

	for _, df := range c.defers {
		if err := df.fn(); err != nil {
			return fmt.Errorf("flush defer: %w", err)
		}
	}

	return nil
}

// Reset drops every queued operation.
func (c *Commands) Reset() {
	clear(c.spawns)
	clear(c.adds)
	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	c.destroyed.Clear()
}
