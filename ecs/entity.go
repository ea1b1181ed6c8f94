package ecs

import (
	"fmt"

	"github.com/kelindar/bitmap"
)

// Entity is a generational handle: the lower 32 bits hold the slot index and the
// upper 32 bits hold the generation of that slot at the time the handle was issued.
type Entity uint64

// NewEntity creates an Entity from a slot index and generation
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsZero reports whether the handle is the zero value, which is never alive.
func (e Entity) IsZero() bool {
	return e == 0
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d:%d)", e.Index(), e.Generation())
}

// EntityRegistry allocates and recycles entity slots. Destroying an entity bumps
// the generation of its slot so outstanding handles become stale.
type EntityRegistry struct {
	generations []uint32
	free        bitmap.Bitmap
	alive       int
}

// NewEntityRegistry creates an empty registry with room for capacity slots.
func NewEntityRegistry(capacity int) *EntityRegistry {
	return &EntityRegistry{
		generations: make([]uint32, 0, capacity),
	}
}

// Create issues a new handle, reusing the lowest-index free slot when one exists.
func (r *EntityRegistry) Create() Entity {
	r.alive++

	if index, ok := r.free.Min(); ok {
		r.free.Remove(index)
		return NewEntity(index, r.generations[index])
	}

	index := uint32(len(r.generations))
	r.generations = append(r.generations, 1)
	return NewEntity(index, 1)
}

// Destroy invalidates the handle and returns its slot to the free set.
func (r *EntityRegistry) Destroy(e Entity) error {
	if !r.IsAlive(e) {
		return &Error{Op: "destroy", Entity: e, Err: ErrStaleHandle}
	}

	index := e.Index()
	r.generations[index]++
	if r.generations[index] == 0 {
		// generation 0 is reserved for the zero handle
		r.generations[index] = 1
	}
	r.free.Set(index)
	r.alive--
	return nil
}

// IsAlive reports whether the handle refers to a currently allocated entity.
func (r *EntityRegistry) IsAlive(e Entity) bool {
	index := e.Index()
	if index >= uint32(len(r.generations)) {
		return false
	}
	return r.generations[index] == e.Generation() && !r.free.Contains(index)
}

// Len returns the number of live entities.
func (r *EntityRegistry) Len() int {
	return r.alive
}

// entityAt returns the current handle for an occupied slot.
func (r *EntityRegistry) entityAt(index uint32) Entity {
	return NewEntity(index, r.generations[index])
}

// appendAlive appends every live handle in slot order.
func (r *EntityRegistry) appendAlive(dst []Entity) []Entity {
	for index, generation := range r.generations {
		if r.free.Contains(uint32(index)) {
			continue
		}
		dst = append(dst, NewEntity(uint32(index), generation))
	}
	return dst
}
