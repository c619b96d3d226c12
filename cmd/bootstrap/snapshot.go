package bootstrap

import (
	"context"
	"log/slog"

	"lockstream/internal/infra/snapshot/memory"
	"lockstream/internal/infra/snapshot/sqlite"
	"lockstream/internal/pkg/config"
	"lockstream/internal/projection"

	"go.uber.org/fx"
)

var SnapshotModule = fx.Module("snapshot",
	fx.Provide(
		NewSnapshotStores,
	),
)

// NewSnapshotStores picks the snapshot backend: in-memory when no path is
// configured, SQLite otherwise. Either way the snapshot is disposable; a
// rebuild from the event log restores it in full.
func NewSnapshotStores(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (
	projection.LockerStore,
	projection.CompartmentStore,
	projection.ReservationStore,
	projection.FaultStore,
	error,
) {
	if cfg.Snapshot.Path == "" {
		logger.Info("using in-memory snapshot store")
		return memory.NewLockerStore(), memory.NewCompartmentStore(), memory.NewReservationStore(), memory.NewFaultStore(), nil
	}

	db, err := sqlite.Open(cfg.Snapshot.Path)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return db.Close()
		},
	})

	logger.Info("using sqlite snapshot store", "path", cfg.Snapshot.Path)
	return sqlite.NewLockerStore(db), sqlite.NewCompartmentStore(db), sqlite.NewReservationStore(db), sqlite.NewFaultStore(db), nil
}
