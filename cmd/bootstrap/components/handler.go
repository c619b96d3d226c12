package components

import (
	"lockstream/internal/handler"
	"lockstream/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewEventHandler,
		api.NewLockerHandler,
		api.NewReservationHandler,
		api.NewProjectionHandler,
	),
	fx.Invoke(handler.NewRouter),
)
