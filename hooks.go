package anybox

// Cloner is implemented by types whose copies must not share state with the
// original. Copy operations call Clone instead of a plain Go assignment.
type Cloner[T any] interface {
	Clone() T
}

// Assigner is implemented by types that need control over same-type typed
// assignment. Set calls Assign on the held value instead of overwriting it.
type Assigner[T any] interface {
	Assign(T)
}

// Destroyer is implemented by types that release something when a container
// gives up ownership of them. Destroy runs exactly once per owned value and
// never for values referenced through a Handle.
type Destroyer interface {
	Destroy()
}
