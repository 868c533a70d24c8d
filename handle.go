package anybox

import "unsafe"

// Handle references a value owned outside any container. A container built
// from a Handle aliases the value: copies alias it too, and resetting the
// container never destroys it.
type Handle[T any] struct {
	ref *T
}

// Ref wraps p. It panics if p is nil.
func Ref[T any](p *T) Handle[T] {
	if p == nil {
		panic("anybox: Ref of nil pointer")
	}
	return Handle[T]{ref: p}
}

// HandleOf references the T held by a, which stays the owner. Like Ptr it does
// not check the held type. An inline value is referenced where it sits, so the
// handle is only meaningful while a keeps holding it.
func HandleOf[T any, B Buffer](a *Any[B]) Handle[T] {
	return Ref(Ptr[T](a))
}

// Target returns the referenced value.
func (h Handle[T]) Target() *T {
	return h.ref
}

type binder interface {
	bind() (table, unsafe.Pointer)
}

func (h Handle[T]) bind() (table, unsafe.Pointer) {
	if h.ref == nil {
		panic("anybox: zero Handle")
	}
	return lookup[T]().handle, unsafe.Pointer(h.ref)
}

// FromHandle returns a container aliasing h's target.
func FromHandle[B Buffer, T any](h Handle[T]) Any[B] {
	var a Any[B]
	a.vt, a.ptr = h.bind()
	return a
}

// SetHandle makes a alias h's target, destroying whatever a owned before.
func SetHandle[T any, B Buffer](a *Any[B], h Handle[T]) {
	tmp := FromHandle[B](h)
	a.Swap(&tmp)
	tmp.Reset()
}
