package layout

import (
	"reflect"
	"unsafe"
)

// WordSize is the alignment every inline buffer guarantees.
const WordSize = unsafe.Sizeof(uint64(0))

// Info describes how values of a type sit in memory.
type Info struct {
	Size        uintptr
	Align       uintptr
	PointerFree bool
}

// Of returns the layout of t.
func Of(t reflect.Type) Info {
	return Info{
		Size:        t.Size(),
		Align:       uintptr(t.Align()),
		PointerFree: PointerFree(t),
	}
}

// Fits reports whether a value with this layout may be stored in an inline
// buffer of the given capacity. The buffer is a run of uint64 words that the
// garbage collector never scans, so pointerful values are rejected.
func (i Info) Fits(capacity uintptr) bool {
	return i.PointerFree && i.Size <= capacity && i.Align <= WordSize
}

// IsScalarKind reports whether k is a fixed-size kind that never holds a pointer.
func IsScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// PointerFree reports whether values of t contain no Go pointers. Strings,
// slices, maps, channels, funcs, interfaces and unsafe.Pointer all do.
func PointerFree(t reflect.Type) bool {
	switch k := t.Kind(); {
	case IsScalarKind(k):
		return true
	case k == reflect.Array:
		return t.Len() == 0 || PointerFree(t.Elem())
	case k == reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !PointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
