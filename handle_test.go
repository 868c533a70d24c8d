package anybox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleDoesNotOwn(t *testing.T) {
	resetCounters(t)
	ext := tracked{ID: 11, Val: 1}
	a := FromHandle[Word](Ref(&ext))

	require.True(t, a.HasValue())
	require.False(t, a.Owned())
	require.False(t, a.Inline())
	require.True(t, Is[tracked](&a))
	require.Same(t, &ext, Ptr[tracked](&a))

	a.Reset()
	require.Zero(t, destroyed[11])
	require.Equal(t, tracked{ID: 11, Val: 1}, ext)
}

func TestHandleThroughNew(t *testing.T) {
	x := 5
	a := New[Quad](Ref(&x))
	require.False(t, a.Owned())
	require.True(t, Is[int](&a))
	require.False(t, Is[Handle[int]](&a))

	Set(&a, 9)
	require.Equal(t, 9, x, "same-type assignment writes through to the target")
}

func TestHandleCloneAliases(t *testing.T) {
	x := int64(1)
	a := FromHandle[Word](Ref(&x))
	c := a.Clone()
	require.Same(t, &x, Ptr[int64](&c))

	*Ptr[int64](&c) = 3
	require.Equal(t, int64(3), Get[int64](&a))

	m := c.Take()
	require.Same(t, &x, Ptr[int64](&m))
	require.False(t, c.HasValue())
}

func TestSetHandle(t *testing.T) {
	resetCounters(t)
	a := Of(tracked{ID: 2})
	ext := wide{ID: 3}

	SetHandle(&a, Ref(&ext))
	require.Equal(t, 1, destroyed[2])
	require.True(t, Is[wide](&a))
	require.False(t, a.Owned())

	Set(&a, int8(1))
	require.Zero(t, destroyed[3], "replacing a handle never destroys its target")
	require.True(t, a.Owned())
}

func TestHandleOf(t *testing.T) {
	owner := Of(int32(4))
	h := HandleOf[int32](&owner)
	require.Same(t, Ptr[int32](&owner), h.Target())

	alias := FromHandle[Line](h)
	*Ptr[int32](&alias) = 8
	require.Equal(t, int32(8), Get[int32](&owner))
}

func TestHandleSwapWithInline(t *testing.T) {
	x := 7
	a := FromHandle[Word](Ref(&x))
	b := Of(int32(1))

	a.Swap(&b)
	require.True(t, a.Inline())
	require.Equal(t, int32(1), Get[int32](&a))
	require.False(t, b.Owned())
	require.Same(t, &x, Ptr[int](&b))
}

func TestRefNilPanics(t *testing.T) {
	require.Panics(t, func() { Ref[int](nil) })
	require.Panics(t, func() { FromHandle[Word](Handle[int]{}) })
}
