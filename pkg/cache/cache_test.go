package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crossroads/pkg/cache"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 42, time.Minute))

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("stores nil pointers as values", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[*string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "absent", nil, 0))

		val, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		require.Nil(t, val)
	})

	t.Run("expires entries after ttl", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("zero ttl never expires by default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", 0))
		time.Sleep(5 * time.Millisecond)

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, "value", val)
	})

	t.Run("zero ttl uses configured default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", 0))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("rejects writes after close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		err := c.Set(context.Background(), "key", "value", 0)
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

func TestMemory_Clear(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))
	require.Equal(t, 2, c.Len())

	require.NoError(t, c.Clear(ctx))
	require.Equal(t, 0, c.Len())

	_, err := c.Get(ctx, "b")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemory_MaxEntries(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithMaxEntries(2))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))

	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", "3", 0))
	require.Equal(t, 2, c.Len())

	_, err = c.Get(ctx, "b")
	require.ErrorIs(t, err, cache.ErrNotFound, "b was least recently used")

	_, err = c.Get(ctx, "a")
	require.NoError(t, err)
}

func TestMemory_Sweep(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithCleanupInterval(2 * time.Millisecond))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", "x", time.Millisecond))
	require.NoError(t, c.Set(ctx, "long", "y", time.Hour))

	require.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("loads once and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		var calls atomic.Int32
		load := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "loaded", 0, nil
		}

		ctx := context.Background()
		for range 3 {
			v, err := cache.GetOrSet(ctx, c, "t1-key", load)
			require.NoError(t, err)
			require.Equal(t, "loaded", v)
		}
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		boom := errors.New("boom")
		_, err := cache.GetOrSet(context.Background(), c, "t2-key", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)
		require.Equal(t, 0, c.Len())
	})

	t.Run("deduplicates concurrent loads", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		var calls atomic.Int32
		release := make(chan struct{})
		load := func(context.Context) (int, time.Duration, error) {
			calls.Add(1)
			<-release
			return 7, 0, nil
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrSet(context.Background(), c, "t3-key", load)
				assert.NoError(t, err)
				assert.Equal(t, 7, v)
			}()
		}

		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
	})
}
