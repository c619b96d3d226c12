package components

import (
	"context"
	"log/slog"

	"lockstream/internal/domain/fault"
	"lockstream/internal/infra/eventlog"
	"lockstream/internal/pkg/config"
	"lockstream/internal/projection"
	"lockstream/internal/usecase/commands"
	"lockstream/internal/usecase/queries"

	"go.uber.org/fx"
)

var ProjectionModule = fx.Module("projection",
	fx.Provide(
		NewProjectionEngine,
		// Port bindings. The concrete stores and the engine satisfy the
		// narrower interfaces the use cases consume.
		func(s *eventlog.Store) commands.EventStore { return s },
		func(e *projection.Engine) commands.Projector { return e },
		func(e *projection.Engine) commands.Rebuilder { return e },
		func(s projection.LockerStore) queries.LockerReadStore { return s },
		func(s projection.CompartmentStore) queries.CompartmentReadStore { return s },
		func(s projection.ReservationStore) queries.ReservationReadStore { return s },
	),
	fx.Invoke(hydrateOnStart),
)

func NewProjectionEngine(
	lockers projection.LockerStore,
	compartments projection.CompartmentStore,
	reservations projection.ReservationStore,
	faults projection.FaultStore,
	opener projection.CursorOpener,
	cfg config.Config,
	logger *slog.Logger,
) *projection.Engine {
	return projection.NewEngine(
		lockers,
		compartments,
		reservations,
		faults,
		opener,
		fault.Severity(cfg.Faults.OutOfServiceThreshold),
		logger,
	)
}

// hydrateOnStart replays the event log into the snapshot before the server
// starts accepting requests, so reads are consistent from the first request.
func hydrateOnStart(lc fx.Lifecycle, engine *projection.Engine, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			result, err := engine.Rebuild(ctx)
			if err != nil {
				return err
			}
			logger.Info("projection hydrated",
				"replayed_events", result.ReplayedEvents,
				"corrupt_records", result.CorruptRecords,
				"anomalies", result.Anomalies,
			)
			return nil
		},
	})
}
