package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kelindar/bitmap"
)

// tagSentinel backs the pointer handed out for present tags. Tags carry no
// payload, so every present tag of every type may share it.
var tagSentinel struct{}

// tagPool stores a zero-size component as a bitmap over entity slots.
type tagPool struct {
	typ      reflect.Type
	zero     any
	bits     bitmap.Bitmap
	count    int
	entities *EntityRegistry
}

func newTagPool(typ reflect.Type, entities *EntityRegistry) *tagPool {
	return &tagPool{
		typ:      typ,
		zero:     reflect.New(typ).Interface(),
		entities: entities,
	}
}

func (p *tagPool) Type() reflect.Type {
	return p.typ
}

func (p *tagPool) Len() int {
	return p.count
}

func (p *tagPool) Has(e Entity) bool {
	return p.entities.IsAlive(e) && p.bits.Contains(e.Index())
}

func (p *tagPool) Remove(e Entity) bool {
	if !p.Has(e) {
		return false
	}
	p.bits.Remove(e.Index())
	p.count--
	return true
}

func (p *tagPool) isTag() bool {
	return true
}

func (p *tagPool) addAny(e Entity, value any) error {
	if p.Has(e) {
		return &Error{Op: "add", Entity: e, Type: p.typ, Err: ErrDuplicateComponent}
	}
	p.bits.Set(e.Index())
	p.count++
	return nil
}

func (p *tagPool) getAny(e Entity) any {
	if !p.Has(e) {
		return nil
	}
	return p.zero
}

func (p *tagPool) pointer(e Entity) unsafe.Pointer {
	if !p.Has(e) {
		return nil
	}
	return unsafe.Pointer(&tagSentinel)
}

// appendEntities appends tagged entities in slot order.
func (p *tagPool) appendEntities(dst []Entity) []Entity {
	p.bits.Range(func(index uint32) {
		dst = append(dst, p.entities.entityAt(index))
	})
	return dst
}

func (p *tagPool) clear() {
	p.bits.Clear()
	p.count = 0
}
