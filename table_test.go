package anybox

import (
	"bytes"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestTablesAreSingletons(t *testing.T) {
	type once struct{ A, B int16 }

	const workers = 16
	got := make([]*tables, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = lookup[once]()
		}(i)
	}
	wg.Wait()
	for _, e := range got {
		require.Same(t, got[0], e)
	}
	require.NotEqual(t, got[0].owned, got[0].handle)

	a := Of(once{1, 2})
	b := Of(once{3, 4})
	require.True(t, a.vt == b.vt)
}

func TestOwnedTableHooks(t *testing.T) {
	require.True(t, ownedFor[tracked]().destroyer)
	require.False(t, ownedFor[tracked]().cloner)
	require.True(t, ownedFor[shared]().cloner)
	require.False(t, ownedFor[int]().destroyer)
}

func TestMaterializationIsLogged(t *testing.T) {
	prev := logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	type fresh struct{ X [3]uint8 }
	_ = Of(fresh{})
	require.Contains(t, buf.String(), "materialized dispatch tables")
	require.Contains(t, buf.String(), "fresh")

	buf.Reset()
	_ = Of(fresh{})
	require.Empty(t, buf.String(), "tables are materialized once")
}

func TestSetLoggerNil(t *testing.T) {
	prev := logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	require.NotNil(t, logger())
}
