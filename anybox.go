package anybox

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Buffer is the set of inline storage capacities a container can embed.
type Buffer interface {
	~[1]uint64 | ~[2]uint64 | ~[4]uint64 | ~[8]uint64
}

// Inline capacities.
type (
	Word [1]uint64 // 8 bytes
	Pair [2]uint64 // 16 bytes
	Quad [4]uint64 // 32 bytes
	Line [8]uint64 // 64 bytes
)

// Box is a container with a one-word inline buffer.
type Box = Any[Word]

// Any holds a single value of any type, or nothing.
//
// Values that are pointer-free and no larger than B are stored in buf;
// everything else lives in a heap object referenced by ptr. vt is nil for an
// empty container and otherwise identifies the held type.
//
// Assigning an Any with = is a shallow move: both copies then share a heap
// payload. Use Clone, Take, CopyFrom and MoveFrom instead.
type Any[B Buffer] struct {
	vt     table
	ptr    unsafe.Pointer
	buf    B
	inline bool
}

// New returns a container holding v. If v is itself a container of any
// capacity, the result holds a copy of its payload. If v is a Handle, the
// result aliases the handle's target.
func New[B Buffer, T any](v T) Any[B] {
	var a Any[B]
	switch src := any(&v).(type) {
	case container:
		a.copyFrom(src)
	case binder:
		a.vt, a.ptr = src.bind()
	default:
		emplace(&a, ownedFor[T](), v)
	}
	return a
}

// Of is New with the default one-word capacity.
func Of[T any](v T) Box {
	return New[Word](v)
}

// emplace stores v into an empty container, inline whenever it fits.
func emplace[B Buffer, T any](a *Any[B], vt *ownedTable[T], v T) {
	if vt.fits(a.capacity()) {
		*(*T)(a.slot()) = v
		a.inline = true
	} else {
		p := new(T)
		*p = v
		a.ptr = unsafe.Pointer(p)
		a.inline = false
	}
	a.vt = vt
}

func (a *Any[B]) capacity() uintptr {
	return unsafe.Sizeof(a.buf)
}

func (a *Any[B]) slot() unsafe.Pointer {
	return unsafe.Pointer(&a.buf)
}

func (a *Any[B]) payload() unsafe.Pointer {
	if a.inline {
		return a.slot()
	}
	return a.ptr
}

// release forgets the payload without destroying it.
func (a *Any[B]) release() {
	a.vt = nil
	a.ptr = nil
	a.inline = false
}

// HasValue reports whether the container holds a value.
func (a *Any[B]) HasValue() bool {
	return a.vt != nil
}

// Inline reports whether the held value lives in the container's own buffer.
func (a *Any[B]) Inline() bool {
	return a.vt != nil && a.inline
}

// Owned reports whether the container owns its value. It is false for empty
// containers and for containers built from a Handle.
func (a *Any[B]) Owned() bool {
	return a.vt != nil && a.vt.owns()
}

// Type returns the held type, or nil if the container is empty.
func (a *Any[B]) Type() reflect.Type {
	if a.vt == nil {
		return nil
	}
	return a.vt.typ()
}

func (a *Any[B]) String() string {
	switch {
	case a.vt == nil:
		return "anybox.Any(empty)"
	case !a.vt.owns():
		return fmt.Sprintf("anybox.Any(%s, handle)", a.vt.typ())
	case a.inline:
		return fmt.Sprintf("anybox.Any(%s, inline)", a.vt.typ())
	default:
		return fmt.Sprintf("anybox.Any(%s, heap)", a.vt.typ())
	}
}

// Clone returns an independent copy of the container. Inline values are
// copied in place, heap values into a fresh allocation. Values implementing
// Cloner are copied through Clone. Handle containers clone to another alias
// of the same target.
func (a *Any[B]) Clone() Any[B] {
	var c Any[B]
	if a.vt == nil {
		return c
	}
	if a.inline {
		a.vt.inPlaceCopy(c.slot(), a.slot())
	} else {
		c.ptr = a.vt.allocCopy(a.ptr)
	}
	c.inline = a.inline
	c.vt = a.vt
	return c
}

// Take moves the value out into a new container and leaves a empty. Heap
// payloads change hands without allocating.
func (a *Any[B]) Take() Any[B] {
	var c Any[B]
	if a.vt == nil {
		return c
	}
	if a.inline {
		a.vt.inPlaceMove(c.slot(), a.slot())
	} else {
		c.ptr = a.ptr
	}
	c.inline = a.inline
	c.vt = a.vt
	a.release()
	return c
}

// CopyFrom replaces the held value with a copy of src's.
func (a *Any[B]) CopyFrom(src *Any[B]) {
	tmp := src.Clone()
	a.Swap(&tmp)
	tmp.Reset()
}

// MoveFrom replaces the held value with src's, leaving src empty.
func (a *Any[B]) MoveFrom(src *Any[B]) {
	tmp := src.Take()
	a.Swap(&tmp)
	tmp.Reset()
}

// Reset destroys the held value and leaves the container empty. Handle
// targets are left untouched.
func (a *Any[B]) Reset() {
	if a.vt == nil {
		return
	}
	a.vt.destroy(a.payload(), a.inline)
	a.release()
}

// Swap exchanges the contents of two containers. Heap payloads and handle
// targets trade pointers; inline payloads are moved by their own tables.
func (a *Any[B]) Swap(o *Any[B]) {
	if a == o {
		return
	}
	switch {
	case a.inline && o.inline:
		var tmp B
		a.vt.inPlaceMove(unsafe.Pointer(&tmp), a.slot())
		o.vt.inPlaceMove(a.slot(), o.slot())
		a.vt.inPlaceMove(o.slot(), unsafe.Pointer(&tmp))
	case a.inline:
		a.ptr, o.ptr = o.ptr, nil
		a.vt.inPlaceMove(o.slot(), a.slot())
		a.inline, o.inline = false, true
	case o.inline:
		o.ptr, a.ptr = a.ptr, nil
		o.vt.inPlaceMove(a.slot(), o.slot())
		a.inline, o.inline = true, false
	default:
		a.ptr, o.ptr = o.ptr, a.ptr
	}
	a.vt, o.vt = o.vt, a.vt
}

// Set stores v in the container. When the container already holds a T the
// value is assigned in place, through Assign if T implements Assigner.
// Otherwise the old value is destroyed and v is stored as New would.
func Set[T any, B Buffer](a *Any[B], v T) {
	switch src := any(&v).(type) {
	case container:
		tmp := Any[B]{}
		tmp.copyFrom(src)
		a.Swap(&tmp)
		tmp.Reset()
		return
	case binder:
		tmp := Any[B]{}
		tmp.vt, tmp.ptr = src.bind()
		a.Swap(&tmp)
		tmp.Reset()
		return
	}

	if Is[T](a) {
		p := Ptr[T](a)
		if as, ok := any(p).(Assigner[T]); ok {
			as.Assign(v)
		} else {
			*p = v
		}
		return
	}
	a.Reset()
	emplace(a, ownedFor[T](), v)
}
