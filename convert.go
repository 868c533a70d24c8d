package anybox

import "unsafe"

// container is the capacity-independent view of an Any, used to move
// payloads between containers with different buffers.
type container interface {
	view() (vt table, p unsafe.Pointer, inline bool)
	release()
}

func (a *Any[B]) view() (table, unsafe.Pointer, bool) {
	return a.vt, a.payload(), a.inline
}

// copyFrom fills the empty a with a copy of src's payload, choosing the
// storage mode for a's own capacity.
func (a *Any[B]) copyFrom(src container) {
	vt, p, _ := src.view()
	if vt == nil {
		return
	}
	if vt.fits(a.capacity()) {
		vt.inPlaceCopy(a.slot(), p)
		a.inline = true
	} else {
		a.ptr = vt.allocCopy(p)
	}
	a.vt = vt
}

// moveFrom fills the empty a with src's payload and empties src.
func (a *Any[B]) moveFrom(src container) {
	vt, p, inline := src.view()
	if vt == nil {
		return
	}
	switch {
	case vt.fits(a.capacity()):
		vt.inPlaceMove(a.slot(), p)
		a.inline = true
	case inline:
		a.ptr = vt.allocMove(p)
	default:
		a.ptr = p
	}
	a.vt = vt
	src.release()
}

// Convert copies src into a container of capacity B. The value is stored
// inline or on the heap according to B, regardless of how src stored it.
func Convert[B, C Buffer](src *Any[C]) Any[B] {
	var a Any[B]
	a.copyFrom(src)
	return a
}

// Transfer is Convert that moves instead of copying, leaving src empty.
func Transfer[B, C Buffer](src *Any[C]) Any[B] {
	var a Any[B]
	a.moveFrom(src)
	return a
}
