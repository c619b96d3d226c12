package bootstrap

import (
	"lockstream/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	EventLogModule,
	SnapshotModule,
	components.ProjectionModule,
	components.UseCaseModule,
	components.HandlerModule,
)
