package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fairway-booking/internal/domain/user"
	"fairway-booking/internal/handler/api"
	"fairway-booking/internal/handler/middleware"
	"fairway-booking/internal/infra/metrics"
	"fairway-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	scheduleHandler *api.ScheduleHandler,
	bookingHandler *api.BookingHandler,
	systemHandler *api.SystemHandler,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, scheduleHandler, bookingHandler, systemHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	scheduleHandler *api.ScheduleHandler,
	bookingHandler *api.BookingHandler,
	systemHandler *api.SystemHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	adminOnly := []gin.HandlerFunc{
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRoleAtLeast(user.RoleAdmin),
	}
	addRoutes(engine.Group("/metrics"), []route{
		{Method: http.MethodGet, Path: "", Handler: systemHandler.GetMetrics, Mw: adminOnly},
		{Method: http.MethodDelete, Path: "", Handler: systemHandler.ResetMetrics, Mw: adminOnly},
	})

	apiGroup := engine.Group("/api")
	{
		schedule := apiGroup.Group("/schedule")
		schedule.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleCoach))
		{
			addRoutes(schedule, []route{
				{Method: http.MethodGet, Path: "", Handler: scheduleHandler.GetSchedule},
				{Method: http.MethodPost, Path: "", Handler: scheduleHandler.UpsertSchedule},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			// Booking creation works for walk-in visitors; a token only links
			// the customer record.
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/indoor", Handler: bookingHandler.GetDayAvailability},
				{Method: http.MethodPost, Path: "/indoor", Handler: bookingHandler.CreateIndoorBooking, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodPost, Path: "/accompanied", Handler: bookingHandler.CreateAccompaniedBooking, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			})

			staff := []gin.HandlerFunc{
				authMiddleware.RequireAuth(),
				authMiddleware.RequireRoleAtLeast(user.RoleCoach),
			}
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings, Mw: staff},
				{Method: http.MethodGet, Path: "/user/:userId", Handler: bookingHandler.GetUserBookings, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
				{Method: http.MethodPatch, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: bookingHandler.UpdateBookingStatus, Mw: staff},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.UpdateBooking, Mw: staff},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.DeleteBooking, Mw: staff},
			})
		}

		cacheGroup := apiGroup.Group("/cache")
		cacheGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(cacheGroup, []route{
				{Method: http.MethodGet, Path: "", Handler: systemHandler.GetCacheStats},
				{Method: http.MethodDelete, Path: "", Handler: systemHandler.InvalidateCache},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
