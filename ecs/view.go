package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded or named pointer fields for each
// component type. Named fields can be marked with the `ecs:"optional"` or
// `ecs:"exclude"` struct tags, and a field of type Entity receives the handle.
//
// A View reads the world directly on every call. Use a Query inside systems.
type View[T any] struct {
	world  *World
	aspect *aspect
}

// NewView compiles the aspect T against world.
func NewView[T any](world *World) *View[T] {
	return &View[T]{
		world:  world,
		aspect: compileAspect(reflect.TypeFor[T](), world),
	}
}

// Fill populates the provided struct pointer with component data for the given
// entity. Returns false if the entity is stale, misses a required component or
// holds an excluded one. Optional components are set to nil if not present.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	return v.aspect.fill(e, unsafe.Pointer(ptr))
}

// Get returns a populated view struct for the given entity, or nil if it does
// not match.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over all matching entities. The candidate set is
// captured when iteration starts; entities created during iteration are not
// visited and entities that stop matching before they are reached are skipped.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		candidates := v.aspect.candidates(nil)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for _, e := range candidates {
			if !v.aspect.fill(e, resultPtr) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Len counts the matching entities.
func (v *View[T]) Len() int {
	count := 0
	for _, e := range v.aspect.candidates(nil) {
		if v.aspect.matches(e) {
			count++
		}
	}
	return count
}

// Spawn creates a new entity from the non-nil Included and Optional fields of
// data. A nil Included field is a programming error and panics.
func (v *View[T]) Spawn(data T) (Entity, error) {
	structPtr := unsafe.Pointer(&data)
	structType := reflect.TypeFor[T]()

	components := make([]any, 0, len(v.aspect.fields))
	for i, f := range v.aspect.fields {
		if f.kind == fieldEntity || f.kind == fieldExcluded {
			continue
		}

		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if componentPtr == nil {
			if f.kind == fieldIncluded {
				panic("ecs: required component " + structType.Field(i).Name + " is nil in View.Spawn")
			}
			continue
		}

		component := reflect.NewAt(f.pool.Type(), componentPtr).Elem().Interface()
		components = append(components, component)
	}

	return v.world.Spawn(components...)
}
