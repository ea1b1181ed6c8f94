package ecs

import (
	"reflect"
	"unsafe"
)

type fieldKind uint8

const (
	fieldIncluded fieldKind = iota
	fieldOptional
	fieldExcluded
	fieldEntity
)

var entityType = reflect.TypeFor[Entity]()

type aspectField struct {
	kind   fieldKind
	offset uintptr
	pool   componentPool
}

// aspect is the compiled form of an aspect struct: the Included, Excluded and
// Optional component sets resolved to pools, plus the field offsets used to
// populate a result without reflection.
type aspect struct {
	world    *World
	fields   []aspectField
	included []componentPool
	excluded []componentPool
}

// compileAspect resolves the struct type t against w.
//
//   - pointer fields are Included (the entity must hold the component)
//   - pointer fields tagged `ecs:"optional"` are Optional and set to nil when absent
//   - pointer fields tagged `ecs:"exclude"` are Excluded and always left nil
//   - a field of type Entity receives the handle of the matched entity
func compileAspect(t reflect.Type, w *World) *aspect {
	if t.Kind() != reflect.Struct {
		panic("ecs: aspect type must be a struct, got " + t.String())
	}

	a := &aspect{
		world:  w,
		fields: make([]aspectField, 0, t.NumField()),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type == entityType {
			a.fields = append(a.fields, aspectField{kind: fieldEntity, offset: field.Offset})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: aspect field " + field.Name + " must be a pointer or an Entity")
		}

		kind := fieldIncluded
		if tag := field.Tag.Get("ecs"); tag != "" {
			switch tag {
			case "optional":
				kind = fieldOptional
			case "exclude":
				kind = fieldExcluded
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (expected \"optional\" or \"exclude\")")
			}
		}

		pool := w.pool(field.Type.Elem())
		a.fields = append(a.fields, aspectField{kind: kind, offset: field.Offset, pool: pool})

		switch kind {
		case fieldIncluded:
			a.included = append(a.included, pool)
		case fieldExcluded:
			a.excluded = append(a.excluded, pool)
		}
	}

	return a
}

// matches reports whether e satisfies Included and not Excluded.
func (a *aspect) matches(e Entity) bool {
	if !a.world.IsAlive(e) {
		return false
	}
	for _, pool := range a.included {
		if !pool.Has(e) {
			return false
		}
	}
	for _, pool := range a.excluded {
		if pool.Has(e) {
			return false
		}
	}
	return true
}

// fill writes the component pointers of e into the struct at ptr. It returns
// false when e does not match the aspect.
func (a *aspect) fill(e Entity, ptr unsafe.Pointer) bool {
	if !a.matches(e) {
		return false
	}

	for _, f := range a.fields {
		fieldPtr := unsafe.Add(ptr, f.offset)
		switch f.kind {
		case fieldEntity:
			*(*Entity)(fieldPtr) = e
		case fieldIncluded, fieldOptional:
			*(*unsafe.Pointer)(fieldPtr) = f.pool.pointer(e)
		case fieldExcluded:
			*(*unsafe.Pointer)(fieldPtr) = nil
		}
	}
	return true
}

// candidates appends the entities that may match: the contents of the smallest
// Included pool, or every live entity when nothing is Included.
func (a *aspect) candidates(dst []Entity) []Entity {
	if a.world.closed {
		return dst
	}
	if len(a.included) == 0 {
		return a.world.entities.appendAlive(dst)
	}

	smallest := a.included[0]
	for _, pool := range a.included[1:] {
		if pool.Len() < smallest.Len() {
			smallest = pool
		}
	}
	return smallest.appendEntities(dst)
}
