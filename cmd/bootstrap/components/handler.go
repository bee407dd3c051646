package components

import (
	"fairway-booking/internal/handler"
	"fairway-booking/internal/handler/api"
	"fairway-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewScheduleHandler,
		api.NewBookingHandler,
		api.NewSystemHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
