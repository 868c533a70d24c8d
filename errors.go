package anybox

import "errors"

var (
	// ErrTypeMismatch is returned by As when the container does not hold the
	// requested type, including when it holds nothing at all.
	ErrTypeMismatch = errors.New("anybox: type mismatch")
)
