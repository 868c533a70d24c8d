package anybox

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/rawbytedev/anybox/internal/layout"
)

// table is the per-type dispatch record a container uses to copy, move and
// destroy its payload without knowing the payload's type. Exactly two kinds
// implement it: ownedTable for values the container owns and handleTable for
// values it merely references.
//
// Pointers passed in are either the address of an inline buffer or a heap
// object, always holding (or about to hold) a value of the table's type.
type table interface {
	allocCopy(src unsafe.Pointer) unsafe.Pointer
	inPlaceCopy(dst, src unsafe.Pointer)
	allocMove(src unsafe.Pointer) unsafe.Pointer
	inPlaceMove(dst, src unsafe.Pointer)
	destroy(obj unsafe.Pointer, inline bool)

	typ() reflect.Type
	fits(capacity uintptr) bool
	owns() bool
}

type ownedTable[T any] struct {
	rt        reflect.Type
	layout    layout.Info
	cloner    bool
	destroyer bool
}

func newOwnedTable[T any](rt reflect.Type) *ownedTable[T] {
	_, cloner := any((*T)(nil)).(Cloner[T])
	_, destroyer := any((*T)(nil)).(Destroyer)
	return &ownedTable[T]{
		rt:        rt,
		layout:    layout.Of(rt),
		cloner:    cloner,
		destroyer: destroyer,
	}
}

func (t *ownedTable[T]) copyOf(src *T) T {
	if t.cloner {
		return any(src).(Cloner[T]).Clone()
	}
	return *src
}

func (t *ownedTable[T]) allocCopy(src unsafe.Pointer) unsafe.Pointer {
	p := new(T)
	*p = t.copyOf((*T)(src))
	return unsafe.Pointer(p)
}

func (t *ownedTable[T]) inPlaceCopy(dst, src unsafe.Pointer) {
	*(*T)(dst) = t.copyOf((*T)(src))
}

// allocMove and inPlaceMove leave the source slot zeroed; whoever held it
// must forget it without destroying.
func (t *ownedTable[T]) allocMove(src unsafe.Pointer) unsafe.Pointer {
	p := new(T)
	s := (*T)(src)
	*p = *s
	var zero T
	*s = zero
	return unsafe.Pointer(p)
}

func (t *ownedTable[T]) inPlaceMove(dst, src unsafe.Pointer) {
	s := (*T)(src)
	*(*T)(dst) = *s
	var zero T
	*s = zero
}

func (t *ownedTable[T]) destroy(obj unsafe.Pointer, inline bool) {
	p := (*T)(obj)
	if t.destroyer {
		any(p).(Destroyer).Destroy()
	}
	// Heap objects are left to the collector once the container drops them.
	if inline {
		var zero T
		*p = zero
	}
}

func (t *ownedTable[T]) typ() reflect.Type { return t.rt }
func (t *ownedTable[T]) fits(capacity uintptr) bool { return t.layout.Fits(capacity) }
func (t *ownedTable[T]) owns() bool { return true }

// handleTable aliases instead of duplicating. A handle container is always
// heap-shaped, so the in-place operations are never reached.
type handleTable[T any] struct {
	rt reflect.Type
}

func (*handleTable[T]) allocCopy(src unsafe.Pointer) unsafe.Pointer { return src }
func (*handleTable[T]) inPlaceCopy(dst, src unsafe.Pointer) {}
func (*handleTable[T]) allocMove(src unsafe.Pointer) unsafe.Pointer { return src }
func (*handleTable[T]) inPlaceMove(dst, src unsafe.Pointer) {}
func (*handleTable[T]) destroy(obj unsafe.Pointer, inline bool) {}

func (t *handleTable[T]) typ() reflect.Type { return t.rt }
func (*handleTable[T]) fits(capacity uintptr) bool { return false }
func (*handleTable[T]) owns() bool { return false }

// tables pairs the two dispatch records of one type.
type tables struct {
	owned  table
	handle table
}

var registry = struct {
	mu sync.RWMutex
	m  map[reflect.Type]*tables
}{m: make(map[reflect.Type]*tables)}

// lookup returns the process-wide tables for T, materializing them on first
// use. Table identity is what Is compares, so there must never be two.
func lookup[T any]() *tables {
	rt := reflect.TypeOf((*T)(nil)).Elem()

	registry.mu.RLock()
	if e, ok := registry.m[rt]; ok {
		registry.mu.RUnlock()
		return e
	}
	registry.mu.RUnlock()

	registry.mu.Lock()
	defer registry.mu.Unlock()

	// Double-check
	if e, ok := registry.m[rt]; ok {
		return e
	}

	owned := newOwnedTable[T](rt)
	e := &tables{
		owned:  owned,
		handle: &handleTable[T]{rt: rt},
	}
	registry.m[rt] = e

	logger().Debug("materialized dispatch tables",
		"type", rt,
		"size", owned.layout.Size,
		"align", owned.layout.Align,
		"pointerFree", owned.layout.PointerFree,
		"cloner", owned.cloner,
		"destroyer", owned.destroyer,
	)
	return e
}

func ownedFor[T any]() *ownedTable[T] {
	return lookup[T]().owned.(*ownedTable[T])
}
