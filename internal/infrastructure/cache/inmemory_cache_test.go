package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("should round-trip a value", func(t *testing.T) {
		c := NewInMemoryCache()
		require.NoError(t, c.Set(ctx, "shopmatch:abc", []byte(`{"ok":true}`), time.Minute))

		value, hit, err := c.Get(ctx, "shopmatch:abc")
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, []byte(`{"ok":true}`), value)
	})

	t.Run("should miss on unknown keys", func(t *testing.T) {
		c := NewInMemoryCache()
		_, hit, err := c.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("should expire entries after the TTL", func(t *testing.T) {
		c := NewInMemoryCache()
		require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Nanosecond))
		time.Sleep(time.Millisecond)

		_, hit, err := c.Get(ctx, "short")
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("should keep entries with zero TTL", func(t *testing.T) {
		c := NewInMemoryCache()
		require.NoError(t, c.Set(ctx, "pinned", []byte("v"), 0))

		_, hit, err := c.Get(ctx, "pinned")
		require.NoError(t, err)
		assert.True(t, hit)
	})

	t.Run("should delete a single key", func(t *testing.T) {
		c := NewInMemoryCache()
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "k"))

		_, hit, _ := c.Get(ctx, "k")
		assert.False(t, hit)
	})

	t.Run("should invalidate only keys under the prefix", func(t *testing.T) {
		c := NewInMemoryCache()
		require.NoError(t, c.Set(ctx, "shopmatch:1", []byte("a"), time.Minute))
		require.NoError(t, c.Set(ctx, "shopmatch:2", []byte("b"), time.Minute))
		require.NoError(t, c.Set(ctx, "other:1", []byte("c"), time.Minute))

		require.NoError(t, c.InvalidatePrefix(ctx, "shopmatch:"))

		_, hit, _ := c.Get(ctx, "shopmatch:1")
		assert.False(t, hit)
		_, hit, _ = c.Get(ctx, "shopmatch:2")
		assert.False(t, hit)
		_, hit, _ = c.Get(ctx, "other:1")
		assert.True(t, hit)
	})
}
