package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrStaleHandle indicates an operation on a destroyed or recycled entity.
	ErrStaleHandle = errors.New("ecs: stale entity handle")
	// ErrMissingComponent indicates a required component is absent.
	ErrMissingComponent = errors.New("ecs: missing component")
	// ErrDuplicateComponent indicates an add on an entity already holding that type.
	ErrDuplicateComponent = errors.New("ecs: duplicate component")
	// ErrComponentNotRegistered signals use of a type unknown to the world's registry.
	ErrComponentNotRegistered = errors.New("ecs: component not registered")
	// ErrWorldClosed is returned by every operation on a world after Close.
	ErrWorldClosed = errors.New("ecs: world closed")
)

// Error describes a failed world operation. It wraps one of the sentinel errors
// above, so callers match with errors.Is.
type Error struct {
	Op     string
	Entity Entity
	Type   reflect.Type
	Err    error
}

func (e *Error) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s %s on %s: %v", e.Op, e.Type, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
