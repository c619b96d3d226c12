package commands

import (
	"context"
	"time"

	"lockstream/internal/domain/event"
	"lockstream/internal/pkg/clock"
	"lockstream/internal/pkg/errs"
)

var (
	ErrEventValidation = errs.New("event validation failed")
	ErrEventStorage    = errs.New("event storage failure")
	ErrProjection      = errs.New("projection update failure")
)

// EventStore is the write side of the append-only log. Append reports true
// when the event was accepted and false when the event_id was seen before.
type EventStore interface {
	Append(ctx context.Context, ev *event.Event) (bool, error)
}

// Projector applies one stored event to the read-model snapshot.
type Projector interface {
	Apply(ctx context.Context, ev event.Event) error
}

type IngestEventInput struct {
	EventID    string
	Type       string
	LockerID   string
	OccurredAt time.Time
	Payload    map[string]any
}

// IngestResult reports the defined outcomes of an ingest: a newly accepted
// event, or a duplicate that was ignored. Duplicates are not errors.
type IngestResult struct {
	Accepted bool
	Sequence int64
}

type IngestCommands interface {
	IngestEvent(ctx context.Context, in IngestEventInput) (*IngestResult, error)
}

type ingestCommandsImpl struct {
	store     EventStore
	projector Projector
	clock     clock.Clock
}

func NewIngestCommands(store EventStore, projector Projector, clk clock.Clock) IngestCommands {
	return &ingestCommandsImpl{store: store, projector: projector, clock: clk}
}

// IngestEvent validates the input, appends it to the log, and drives the
// incremental projection update. A duplicate event_id short-circuits before
// the projection so an at-least-once producer can never double-apply.
func (c *ingestCommandsImpl) IngestEvent(ctx context.Context, in IngestEventInput) (*IngestResult, error) {
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		// Producers with broken clocks send no timestamp; ingestion time is
		// the best stand-in and it is persisted, so replay stays stable.
		occurredAt = c.clock.Now()
	}
	ev := event.Event{
		EventID:    in.EventID,
		Type:       event.Type(in.Type),
		LockerID:   in.LockerID,
		OccurredAt: occurredAt.UTC(),
		Payload:    in.Payload,
	}
	if err := event.Validate(ev); err != nil {
		return nil, errs.Mark(err, ErrEventValidation)
	}

	accepted, err := c.store.Append(ctx, &ev)
	if err != nil {
		return nil, errs.Mark(err, ErrEventStorage)
	}
	if !accepted {
		return &IngestResult{Accepted: false}, nil
	}

	if err := c.projector.Apply(ctx, ev); err != nil {
		return nil, errs.Mark(err, ErrProjection)
	}
	return &IngestResult{Accepted: true, Sequence: ev.Sequence}, nil
}
