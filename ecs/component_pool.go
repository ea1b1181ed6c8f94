package ecs

import (
	"reflect"
	"unsafe"
)

// componentPool is the type-erased view of a pool that the world, aspects and
// commands work with.
type componentPool interface {
	Type() reflect.Type
	Len() int
	Has(e Entity) bool
	Remove(e Entity) bool

	isTag() bool
	addAny(e Entity, value any) error
	getAny(e Entity) any
	pointer(e Entity) unsafe.Pointer
	appendEntities(dst []Entity) []Entity
	clear()
}
