package commands

import (
	"context"

	"lockstream/internal/pkg/errs"
	"lockstream/internal/projection"
)

var ErrRebuildFailed = errs.New("projection rebuild failed")

// Rebuilder is the recovery side of the projection engine.
type Rebuilder interface {
	Rebuild(ctx context.Context) (projection.RebuildResult, error)
}

type RebuildResult struct {
	ReplayedEvents int
	CorruptRecords int
	Anomalies      int
}

type ProjectionCommands interface {
	RebuildProjection(ctx context.Context) (*RebuildResult, error)
}

type projectionCommandsImpl struct {
	rebuilder Rebuilder
}

func NewProjectionCommands(rebuilder Rebuilder) ProjectionCommands {
	return &projectionCommandsImpl{rebuilder: rebuilder}
}

// RebuildProjection discards the snapshot and replays the full event log.
func (c *projectionCommandsImpl) RebuildProjection(ctx context.Context) (*RebuildResult, error) {
	result, err := c.rebuilder.Rebuild(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrRebuildFailed)
	}
	return &RebuildResult{
		ReplayedEvents: result.ReplayedEvents,
		CorruptRecords: result.CorruptRecords,
		Anomalies:      result.Anomalies,
	}, nil
}
