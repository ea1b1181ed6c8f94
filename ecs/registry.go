package ecs

import (
	"reflect"
)

type poolFactory func(capacity int, entities *EntityRegistry) componentPool

// ComponentRegistry holds the fixed set of component types a World can store.
// A World copies the registry when it is created; types registered afterwards
// are not visible to that World.
type ComponentRegistry struct {
	factories map[reflect.Type]poolFactory
	order     []reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]poolFactory),
	}
}

// RegisterComponent registers T with the registry. Zero-size types are stored
// as tags. Registering the same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: component " + t.String() + " must be a value type")
	}

	if t.Size() == 0 {
		r.factories[t] = func(_ int, entities *EntityRegistry) componentPool {
			return newTagPool(t, entities)
		}
	} else {
		r.factories[t] = func(capacity int, entities *EntityRegistry) componentPool {
			return newPool[T](capacity, entities)
		}
	}
	r.order = append(r.order, t)
}

// Types returns the registered types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return append([]reflect.Type(nil), r.order...)
}
