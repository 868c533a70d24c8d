// Package anybox provides Any, a container that holds one value of any type
// behind a single handle type.
//
// Small pointer-free values are stored in a fixed buffer inside the
// container; everything else goes to the heap. The buffer size is the type
// parameter (Word, Pair, Quad or Line), and Box is the one-word default.
// Copy, move and destroy are dispatched through a per-type table, so code
// that only has an Any can duplicate or release its payload without knowing
// what it is.
//
// A container can also alias a value owned elsewhere through a Handle. Such a
// container never copies or destroys its target.
//
// Any is a plain value type and is not safe for concurrent mutation.
package anybox
