package ecs_test

import (
	"testing"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewAspects(t *testing.T) {
	world := newTestWorld()

	moving, _ := world.Spawn(Position{X: 1}, Velocity{DX: 1})
	frozen, _ := world.Spawn(Position{X: 2}, Velocity{DX: 2}, Frozen{})
	named, _ := world.Spawn(Position{X: 3}, Velocity{DX: 3}, Name{Value: "n"})
	still, _ := world.Spawn(Position{X: 4})

	t.Run("included", func(t *testing.T) {
		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](world)
		assert.Equal(t, 3, view.Len())
		assert.Nil(t, view.Get(still))
	})

	t.Run("excluded", func(t *testing.T) {
		view := ecs.NewView[struct {
			ecs.Entity
			*Position
			Frozen *Frozen `ecs:"exclude"`
		}](world)

		seen := []ecs.Entity{}
		for e, item := range view.Iter() {
			assert.Equal(t, e, item.Entity)
			assert.Nil(t, item.Frozen)
			seen = append(seen, e)
		}
		assert.ElementsMatch(t, []ecs.Entity{moving, named, still}, seen)
		assert.Nil(t, view.Get(frozen))
	})

	t.Run("optional", func(t *testing.T) {
		view := ecs.NewView[struct {
			*Position
			Name *Name `ecs:"optional"`
		}](world)

		withName := view.Get(named)
		require.NotNil(t, withName)
		require.NotNil(t, withName.Name)
		assert.Equal(t, "n", withName.Name.Value)

		withoutName := view.Get(moving)
		require.NotNil(t, withoutName)
		assert.Nil(t, withoutName.Name)
	})

	t.Run("tag included", func(t *testing.T) {
		view := ecs.NewView[struct {
			*Position
			*Frozen
		}](world)
		item := view.Get(frozen)
		require.NotNil(t, item)
		assert.NotNil(t, item.Frozen)
		assert.Equal(t, int32(2), item.Position.X)
	})

	t.Run("nothing included enumerates every live entity", func(t *testing.T) {
		view := ecs.NewView[struct {
			ecs.Entity
			Frozen *Frozen `ecs:"exclude"`
		}](world)
		assert.Equal(t, 3, view.Len())
	})

	t.Run("mutation through pointers", func(t *testing.T) {
		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](world)
		for item := range view.Values() {
			item.Position.X += item.Velocity.DX
		}
		pos, err := ecs.GetComponent[Position](world, moving)
		require.NoError(t, err)
		assert.Equal(t, int32(2), pos.X)
	})

	t.Run("stale handle does not match", func(t *testing.T) {
		view := ecs.NewView[struct{ *Position }](world)
		require.NoError(t, world.Destroy(still))
		assert.Nil(t, view.Get(still))
	})
}

func TestViewInvalidAspect(t *testing.T) {
	world := newTestWorld()

	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](world)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](world)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ *float64 }](world)
	})
}

func TestViewSpawn(t *testing.T) {
	world := newTestWorld()
	view := ecs.NewView[struct {
		*Position
		*Frozen
		Name *Name `ecs:"optional"`
	}](world)

	e, err := view.Spawn(struct {
		*Position
		*Frozen
		Name *Name `ecs:"optional"`
	}{Position: &Position{X: 5}, Frozen: &Frozen{}})
	require.NoError(t, err)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, int32(5), item.Position.X)
	assert.Nil(t, item.Name)

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			*Frozen
			Name *Name `ecs:"optional"`
		}{Frozen: &Frozen{}})
	})
}
