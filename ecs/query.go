package ecs

import (
	"iter"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Query wraps a View with a per-execution cache. Execute captures the matching
// entities and their component pointers once; Iter, Values and Get then serve
// from the cache, so structural changes queued while iterating are never seen by
// the same execution.
type Query[T any] struct {
	view *View[T]

	cachedEntities   []Entity
	cachedComponents []T
	cacheValid       bool

	index   *intmap.Map[Entity, int32]
	indexed bool
}

// NewQuery creates a new Query over world.
func NewQuery[T any](world *World) *Query[T] {
	q := &Query[T]{}
	q.Init(world)
	return q
}

// Init initializes or re-initializes the Query with a world.
// Called by the Pipeline during system registration.
func (q *Query[T]) Init(world *World) {
	q.view = NewView[T](world)
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]
	q.cacheValid = false
	q.indexed = false
}

// Execute rebuilds the entity and component caches from the current world
// state. Called automatically by the Pipeline before the owning system runs.
func (q *Query[T]) Execute() {
	a := q.view.aspect

	q.cachedEntities = a.candidates(q.cachedEntities[:0])
	clear(q.cachedComponents)
	q.cachedComponents = q.cachedComponents[:0]

	var result T
	resultPtr := unsafe.Pointer(&result)

	matched := q.cachedEntities[:0]
	for _, e := range q.cachedEntities {
		if !a.fill(e, resultPtr) {
			continue
		}
		matched = append(matched, e)
		q.cachedComponents = append(q.cachedComponents, result)
	}
	q.cachedEntities = matched

	q.cacheValid = true
	q.indexed = false
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(Entity, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Entities returns the cached matches. The slice is reused by the next Execute.
func (q *Query[T]) Entities() []Entity {
	if !q.cacheValid {
		panic("Query.Entities() called before Query.Execute()")
	}
	return q.cachedEntities
}

// Len returns the number of cached matches.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// Get looks e up in the cached result set. The lookup index is built on first
// use after each Execute.
func (q *Query[T]) Get(e Entity) (T, bool) {
	if !q.cacheValid {
		panic("Query.Get() called before Query.Execute()")
	}

	if !q.indexed {
		if q.index == nil {
			q.index = intmap.New[Entity, int32](len(q.cachedEntities))
		} else {
			q.index.Clear()
		}
		for i, cached := range q.cachedEntities {
			q.index.Put(cached, int32(i))
		}
		q.indexed = true
	}

	pos, ok := q.index.Get(e)
	if !ok {
		var zero T
		return zero, false
	}
	return q.cachedComponents[pos], true
}
