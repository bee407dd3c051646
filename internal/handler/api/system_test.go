//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"fairway-booking/internal/handler/api"
	resdto "fairway-booking/internal/handler/dto/response"
	"fairway-booking/internal/infra/cache"
	"fairway-booking/internal/infra/metrics"
	"fairway-booking/internal/pkg/config"
	"fairway-booking/tests/common/httptest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystemRouter(t *testing.T) (*gin.Engine, *cache.Cache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	viewCache := cache.New(client, config.CacheConfig{TTL: time.Minute, KeyPrefix: "fairway-test"})
	handler := api.NewSystemHandler(viewCache, metrics.New())

	router := gin.New()
	router.GET("/system/cache", handler.GetCacheStats)
	router.DELETE("/system/cache", handler.InvalidateCache)
	return router, viewCache
}

func TestGetCacheStats(t *testing.T) {
	router, viewCache := newSystemRouter(t)
	ctx := context.Background()

	t.Run("empty cache reports zero size and no keys", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/system/cache", nil, "")

		var resp resdto.CacheStatsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.EqualValues(t, 0, resp.Size)
		assert.Equal(t, []string{}, resp.Keys)
	})

	t.Run("lists cached key names", func(t *testing.T) {
		require.NoError(t, viewCache.Set(ctx, "schedule:all", "a"))
		require.NoError(t, viewCache.Set(ctx, "availability:2026-01-05", "b"))

		w := httptest.PerformRequest(t, router, http.MethodGet, "/system/cache", nil, "")

		var resp resdto.CacheStatsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.EqualValues(t, 2, resp.Size)
		assert.Equal(t, []string{"availability:2026-01-05", "schedule:all"}, resp.Keys)
	})
}

func TestInvalidateCache(t *testing.T) {
	router, viewCache := newSystemRouter(t)
	ctx := context.Background()

	require.NoError(t, viewCache.Set(ctx, "schedule:all", "a"))
	require.NoError(t, viewCache.Set(ctx, "availability:2026-01-05", "b"))

	t.Run("pattern clears matching keys only", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodDelete, "/system/cache?pattern=availability", nil, "")

		var resp resdto.CacheInvalidateResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.EqualValues(t, 1, resp.Deleted)

		stats, err := viewCache.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"schedule:all"}, stats.Keys)
	})

	t.Run("no pattern clears the namespace", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodDelete, "/system/cache", nil, "")

		var resp resdto.CacheInvalidateResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.EqualValues(t, 1, resp.Deleted)

		stats, err := viewCache.Stats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.Size)
	})
}
