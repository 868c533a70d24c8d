package anybox

import (
	"fmt"
	"reflect"
)

// Is reports whether a holds a T, either owned or through a Handle.
func Is[T any, B Buffer](a *Any[B]) bool {
	if a.vt == nil {
		return false
	}
	e := lookup[T]()
	return a.vt == e.owned || a.vt == e.handle
}

// Ptr returns a pointer to the held value without checking its type.
// The caller must know a holds a T; anything else is undefined.
func Ptr[T any, B Buffer](a *Any[B]) *T {
	return (*T)(a.payload())
}

// Get returns the held value without checking its type. Like Ptr, it is only
// defined when a holds a T.
func Get[T any, B Buffer](a *Any[B]) T {
	return *Ptr[T](a)
}

// TryGet returns a pointer to the held value if a holds a T. It returns
// nil, false for any other type and for an empty container.
func TryGet[T any, B Buffer](a *Any[B]) (*T, bool) {
	if !Is[T](a) {
		return nil, false
	}
	return Ptr[T](a), true
}

// As is TryGet reporting the mismatch as an error wrapping ErrTypeMismatch.
func As[T any, B Buffer](a *Any[B]) (*T, error) {
	if p, ok := TryGet[T](a); ok {
		return p, nil
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	if a.vt == nil {
		return nil, fmt.Errorf("%w: empty, want %s", ErrTypeMismatch, want)
	}
	return nil, fmt.Errorf("%w: holds %s, want %s", ErrTypeMismatch, a.vt.typ(), want)
}
