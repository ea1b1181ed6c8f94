package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

const (
	poolBlockSize = 64
)

// Pool stores the components of type T as a sparse set: values are packed
// densely in fixed-size blocks and a sparse index maps entity slots to dense
// positions. Blocks are never moved, so pointers stay valid until the component
// is removed or another component is removed from the same pool.
type Pool[T any] struct {
	typ      reflect.Type
	blocks   []*[poolBlockSize]T
	entities []Entity
	sparse   *intmap.Map[uint32, int32]
	registry *EntityRegistry
}

func newPool[T any](capacity int, registry *EntityRegistry) *Pool[T] {
	return &Pool[T]{
		typ:      reflect.TypeFor[T](),
		entities: make([]Entity, 0, capacity),
		sparse:   intmap.New[uint32, int32](capacity),
		registry: registry,
	}
}

// Type returns the component type stored in the pool.
func (p *Pool[T]) Type() reflect.Type {
	return p.typ
}

// Len returns the number of stored components.
func (p *Pool[T]) Len() int {
	return len(p.entities)
}

// Add stores value for e. It fails with ErrStaleHandle when e is not alive and
// with ErrDuplicateComponent when e already holds a T.
func (p *Pool[T]) Add(e Entity, value T) error {
	if !p.registry.IsAlive(e) {
		return &Error{Op: "add", Entity: e, Type: p.typ, Err: ErrStaleHandle}
	}
	if _, ok := p.dense(e); ok {
		return &Error{Op: "add", Entity: e, Type: p.typ, Err: ErrDuplicateComponent}
	}

	pos := len(p.entities)
	blockIdx := pos / poolBlockSize
	if blockIdx >= len(p.blocks) {
		p.blocks = append(p.blocks, new([poolBlockSize]T))
	}

	p.blocks[blockIdx][pos%poolBlockSize] = value
	p.entities = append(p.entities, e)
	p.sparse.Put(e.Index(), int32(pos))
	return nil
}

// Get returns a pointer to the component of e. Stale handles fail with
// ErrStaleHandle, live entities without a T with ErrMissingComponent.
func (p *Pool[T]) Get(e Entity) (*T, error) {
	if !p.registry.IsAlive(e) {
		return nil, &Error{Op: "get", Entity: e, Type: p.typ, Err: ErrStaleHandle}
	}
	pos, ok := p.dense(e)
	if !ok {
		return nil, &Error{Op: "get", Entity: e, Type: p.typ, Err: ErrMissingComponent}
	}
	return p.at(pos), nil
}

// Has reports whether e holds a T.
func (p *Pool[T]) Has(e Entity) bool {
	_, ok := p.dense(e)
	return ok
}

// Remove deletes the component of e. Removing an absent component is a no-op.
// The last component is moved into the freed position.
func (p *Pool[T]) Remove(e Entity) bool {
	pos, ok := p.dense(e)
	if !ok {
		return false
	}

	last := len(p.entities) - 1
	if pos != last {
		moved := p.entities[last]
		*p.at(pos) = *p.at(last)
		p.entities[pos] = moved
		p.sparse.Put(moved.Index(), int32(pos))
	}

	var zero T
	*p.at(last) = zero
	p.entities = p.entities[:last]
	p.sparse.Del(e.Index())
	return true
}

// Entities returns a copy of the entities holding a T, in dense order.
func (p *Pool[T]) Entities() []Entity {
	return p.appendEntities(make([]Entity, 0, len(p.entities)))
}

func (p *Pool[T]) dense(e Entity) (int, bool) {
	pos, ok := p.sparse.Get(e.Index())
	if !ok || p.entities[pos] != e {
		return 0, false
	}
	return int(pos), true
}

func (p *Pool[T]) at(pos int) *T {
	return &p.blocks[pos/poolBlockSize][pos%poolBlockSize]
}

func (p *Pool[T]) isTag() bool {
	return false
}

func (p *Pool[T]) addAny(e Entity, value any) error {
	switch v := value.(type) {
	case T:
		return p.Add(e, v)
	case *T:
		return p.Add(e, *v)
	}
	return &Error{Op: "add", Entity: e, Type: reflect.TypeOf(value), Err: ErrComponentNotRegistered}
}

func (p *Pool[T]) getAny(e Entity) any {
	pos, ok := p.dense(e)
	if !ok {
		return nil
	}
	return p.at(pos)
}

func (p *Pool[T]) pointer(e Entity) unsafe.Pointer {
	pos, ok := p.dense(e)
	if !ok {
		return nil
	}
	return unsafe.Pointer(p.at(pos))
}

func (p *Pool[T]) appendEntities(dst []Entity) []Entity {
	return append(dst, p.entities...)
}

func (p *Pool[T]) clear() {
	p.blocks = nil
	p.entities = p.entities[:0]
	p.sparse.Clear()
}
