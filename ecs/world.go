package ecs

import (
	"reflect"
	"unsafe"
)

// WorldOption configures a World at construction.
type WorldOption func(*worldConfig)

type worldConfig struct {
	entityCapacity int
}

// WithEntityCapacity preallocates room for n entities in the registry and pools.
func WithEntityCapacity(n int) WorldOption {
	return func(c *worldConfig) {
		c.entityCapacity = n
	}
}

// World owns every entity, component pool and singleton. It is the single point
// through which structure changes; systems reach it through their queries and
// the frame's command buffer.
type World struct {
	entities   *EntityRegistry
	pools      []componentPool
	byType     map[reflect.Type]componentPool
	singletons map[reflect.Type]*singletonEntry
	closed     bool
}

type singletonEntry struct {
	dataPtr unsafe.Pointer
}

// NewWorld creates a world holding one pool per type registered in registry.
func NewWorld(registry *ComponentRegistry, opts ...WorldOption) *World {
	cfg := worldConfig{entityCapacity: 256}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &World{
		entities:   NewEntityRegistry(cfg.entityCapacity),
		byType:     make(map[reflect.Type]componentPool, len(registry.order)),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
	for _, t := range registry.order {
		pool := registry.factories[t](cfg.entityCapacity, w.entities)
		w.pools = append(w.pools, pool)
		w.byType[t] = pool
	}
	return w
}

// Create allocates a new entity without components.
func (w *World) Create() Entity {
	if w.closed {
		panic(ErrWorldClosed)
	}
	return w.entities.Create()
}

// Spawn creates an entity carrying the given components.
func (w *World) Spawn(components ...any) (Entity, error) {
	if w.closed {
		return 0, ErrWorldClosed
	}

	e := w.entities.Create()
	for _, c := range components {
		if err := w.Add(e, c); err != nil {
			// leave no half-built entity behind
			_ = w.Destroy(e)
			return 0, err
		}
	}
	return e, nil
}

// Destroy removes every component of e and invalidates the handle.
func (w *World) Destroy(e Entity) error {
	if w.closed {
		return ErrWorldClosed
	}
	if !w.entities.IsAlive(e) {
		return &Error{Op: "destroy", Entity: e, Err: ErrStaleHandle}
	}

	for _, pool := range w.pools {
		pool.Remove(e)
	}
	return w.entities.Destroy(e)
}

// IsAlive reports whether e refers to a live entity.
func (w *World) IsAlive(e Entity) bool {
	return !w.closed && w.entities.IsAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.Len()
}

// Add attaches component to e. component may be a value or a pointer to one.
func (w *World) Add(e Entity, component any) error {
	compType := reflect.TypeOf(component)
	if compType != nil && compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	pool, err := w.poolFor(e, "add", compType)
	if err != nil {
		return err
	}
	return pool.addAny(e, component)
}

// Remove detaches the component of type compType from e. Removing an absent
// component is a no-op.
func (w *World) Remove(e Entity, compType reflect.Type) error {
	pool, err := w.poolFor(e, "remove", compType)
	if err != nil {
		return err
	}
	pool.Remove(e)
	return nil
}

// Get returns a pointer to the component of type compType held by e.
func (w *World) Get(e Entity, compType reflect.Type) (any, error) {
	pool, err := w.poolFor(e, "get", compType)
	if err != nil {
		return nil, err
	}
	if c := pool.getAny(e); c != nil {
		return c, nil
	}
	return nil, &Error{Op: "get", Entity: e, Type: compType, Err: ErrMissingComponent}
}

// Has reports whether e is alive and holds a component of type compType.
func (w *World) Has(e Entity, compType reflect.Type) bool {
	if !w.IsAlive(e) {
		return false
	}
	pool, ok := w.byType[compType]
	return ok && pool.Has(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w.closed {
		return nil
	}
	return w.entities.appendAlive(make([]Entity, 0, w.entities.Len()))
}

// Close releases all storage. Every later call on the world fails with
// ErrWorldClosed.
func (w *World) Close() {
	if w.closed {
		return
	}
	for _, pool := range w.pools {
		pool.clear()
	}
	w.pools = nil
	w.byType = nil
	w.singletons = nil
	w.entities = NewEntityRegistry(0)
	w.closed = true
}

// Closed reports whether Close has been called.
func (w *World) Closed() bool {
	return w.closed
}

func (w *World) poolFor(e Entity, op string, compType reflect.Type) (componentPool, error) {
	if w.closed {
		return nil, ErrWorldClosed
	}
	if !w.entities.IsAlive(e) {
		return nil, &Error{Op: op, Entity: e, Type: compType, Err: ErrStaleHandle}
	}
	pool, ok := w.byType[compType]
	if !ok {
		return nil, &Error{Op: op, Entity: e, Type: compType, Err: ErrComponentNotRegistered}
	}
	return pool, nil
}

func (w *World) pool(compType reflect.Type) componentPool {
	pool, ok := w.byType[compType]
	if !ok {
		panic("ecs: component type " + compType.String() + " not registered")
	}
	return pool
}

// PoolOf returns the typed pool for T. It panics if T is not registered or is a
// tag, since tags have no values to hand out.
func PoolOf[T any](w *World) *Pool[T] {
	pool, ok := w.pool(reflect.TypeFor[T]()).(*Pool[T])
	if !ok {
		panic("ecs: " + reflect.TypeFor[T]().String() + " is a tag and has no typed pool")
	}
	return pool
}

// AddComponent attaches value to e.
func AddComponent[T any](w *World, e Entity, value T) error {
	return w.Add(e, value)
}

// GetComponent returns a pointer to the T held by e.
func GetComponent[T any](w *World, e Entity) (*T, error) {
	c, err := w.Get(e, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return c.(*T), nil
}

// HasComponent reports whether e holds a T.
func HasComponent[T any](w *World, e Entity) bool {
	return w.Has(e, reflect.TypeFor[T]())
}

// RemoveComponent detaches the T held by e, if any.
func RemoveComponent[T any](w *World, e Entity) error {
	return w.Remove(e, reflect.TypeFor[T]())
}
