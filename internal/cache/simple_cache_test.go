package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func freezeTime(t *testing.T) *time.Time {
	t.Helper()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })
	return &base
}

func TestSimpleCache_SetGet_NoTTL(t *testing.T) {
	c := NewSimpleCache[string, int](Options{})
	c.Set("a", 1, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.True(t, c.Has("a"))
	require.Equal(t, 1, c.Len())
}

func TestSimpleCache_TTL_Expiry(t *testing.T) {
	clock := freezeTime(t)
	c := NewSimpleCache[string, string](Options{ConcurrencySafe: true})

	c.Set("k", "v", time.Second)
	_, ok := c.Get("k")
	require.True(t, ok)

	*clock = clock.Add(2 * time.Second)
	_, ok = c.Get("k")
	require.False(t, ok)
	require.False(t, c.Has("k"))

	c.PurgeExpired()
	require.Equal(t, 0, c.Len())
}

func TestSimpleCache_DefaultTTL(t *testing.T) {
	clock := freezeTime(t)
	c := NewSimpleCache[string, int](Options{DefaultTTL: time.Minute})

	c.Set("k", 7, 0)
	*clock = clock.Add(59 * time.Second)
	require.True(t, c.Has("k"))

	*clock = clock.Add(2 * time.Second)
	require.False(t, c.Has("k"))
}

func TestSimpleCache_Delete(t *testing.T) {
	c := NewSimpleCache[int, int](Options{ConcurrencySafe: true})
	c.Set(1, 10, 0)
	c.Set(2, 20, 0)
	c.Delete(1)

	_, ok := c.Get(1)
	require.False(t, ok)
	require.Equal(t, 1, c.Len())
}

func TestSimpleCache_ConcurrentWriters(t *testing.T) {
	c := NewSimpleCache[int, int](Options{ConcurrencySafe: true})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < 100; r++ {
				c.Set(i, r, 0)
				_, _ = c.Get(i)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 50, c.Len())
}
