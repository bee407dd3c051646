package api

import (
	"net/http"

	resdto "fairway-booking/internal/handler/dto/response"
	"fairway-booking/internal/handler/httperr"
	"fairway-booking/internal/infra/cache"
	"fairway-booking/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the operational endpoints: cache inspection and
// invalidation, metrics exposition and reset.
type SystemHandler struct {
	cache   *cache.Cache
	metrics *metrics.Metrics
}

func NewSystemHandler(viewCache *cache.Cache, m *metrics.Metrics) *SystemHandler {
	return &SystemHandler{
		cache:   viewCache,
		metrics: m,
	}
}

func (h *SystemHandler) GetCacheStats(c *gin.Context) {
	stats, err := h.cache.Stats(c.Request.Context())
	if err != nil {
		httperr.Database(c, err, "Failed to read cache stats")
		return
	}

	c.JSON(http.StatusOK, resdto.CacheStatsResponse{
		Size: stats.Size,
		Keys: stats.Keys,
	})
}

// InvalidateCache clears keys matching the pattern query parameter, or the
// whole namespace when none is given.
func (h *SystemHandler) InvalidateCache(c *gin.Context) {
	pattern := c.Query("pattern")

	var (
		deleted int64
		err     error
	)
	if pattern == "" {
		deleted, err = h.cache.Clear(c.Request.Context())
	} else {
		deleted, err = h.cache.InvalidatePattern(c.Request.Context(), pattern)
	}
	if err != nil {
		httperr.Database(c, err, "Failed to invalidate cache")
		return
	}

	c.JSON(http.StatusOK, resdto.CacheInvalidateResponse{Deleted: deleted})
}

func (h *SystemHandler) GetMetrics(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

func (h *SystemHandler) ResetMetrics(c *gin.Context) {
	h.metrics.Reset()
	c.Status(http.StatusNoContent)
}
