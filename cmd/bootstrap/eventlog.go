package bootstrap

import (
	"context"
	"log/slog"

	"lockstream/internal/infra/eventlog"
	"lockstream/internal/pkg/config"
	"lockstream/internal/projection"

	"go.uber.org/fx"
)

var EventLogModule = fx.Module("eventlog",
	fx.Provide(
		NewEventLog,
		NewCursorOpener,
	),
)

func NewEventLog(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*eventlog.Store, error) {
	store, err := eventlog.Open(cfg.EventLog.Path, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

func NewCursorOpener(store *eventlog.Store) projection.CursorOpener {
	return func(after int64) (projection.EventCursor, error) {
		return store.ListSince(after)
	}
}
