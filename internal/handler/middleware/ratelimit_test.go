//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"fairway-booking/internal/handler/middleware"
	"fairway-booking/internal/pkg/config"
	"fairway-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.NewRateLimiter(cfg).Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimiter(t *testing.T) {
	t.Run("requests beyond the burst are rejected", func(t *testing.T) {
		router := newRateLimitedRouter(config.RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   2,
		})

		for range 2 {
			w := httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil, "")
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil, "")
		httptest.AssertErrorCode(t, w, http.StatusTooManyRequests, "RATE_LIMITED")
	})

	t.Run("disabled limiter passes everything through", func(t *testing.T) {
		router := newRateLimitedRouter(config.RateLimitConfig{Enabled: false})

		for range 20 {
			w := httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil, "")
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("zero burst falls back to a sane default", func(t *testing.T) {
		router := newRateLimitedRouter(config.RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   0,
		})

		w := httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
