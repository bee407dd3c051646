//go:build unit

package cache

import (
	"context"
	"testing"
	"time"

	"fairway-booking/internal/pkg/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := New(client, config.CacheConfig{TTL: ttl, KeyPrefix: "fairway-test"})
	return c, s
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := c.Set(ctx, "schedule:all", payload{Name: "week1", Count: 3})
	require.NoError(t, err)

	var got payload
	err = c.Get(ctx, "schedule:all", &got)
	require.NoError(t, err)
	assert.Equal(t, "week1", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestCache_MissOnAbsentKey(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var got map[string]any
	err := c.Get(context.Background(), "nothing-here", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c, s := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "bookings:2024-01-01", []string{"09:00"}))

	var got []string
	require.NoError(t, c.Get(ctx, "bookings:2024-01-01", &got))

	s.FastForward(5*time.Minute + time.Second)

	err := c.Get(ctx, "bookings:2024-01-01", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_InvalidatePattern(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "bookings:2024-01-01", "a"))
	require.NoError(t, c.Set(ctx, "bookings:2024-01-02", "b"))
	require.NoError(t, c.Set(ctx, "schedule:all", "c"))

	deleted, err := c.InvalidatePattern(ctx, "bookings")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	var got string
	assert.ErrorIs(t, c.Get(ctx, "bookings:2024-01-01", &got), ErrMiss)
	assert.NoError(t, c.Get(ctx, "schedule:all", &got))
	assert.Equal(t, "c", got)
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "schedule:all", "a"))
	require.NoError(t, c.Set(ctx, "bookings:2024-01-01", "b"))

	deleted, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(2))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "schedule:all", &got), ErrMiss)
}

func TestCache_Stats(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.Size)
	assert.Empty(t, stats.Keys)

	require.NoError(t, c.Set(ctx, "schedule:all", "a"))
	require.NoError(t, c.Set(ctx, "bookings:2024-01-01", "b"))

	stats, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Size)
	assert.Equal(t, []string{"bookings:2024-01-01", "schedule:all"}, stats.Keys)
}
