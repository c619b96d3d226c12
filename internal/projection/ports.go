package projection

import (
	"context"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/event"
	"lockstream/internal/domain/fault"
	"lockstream/internal/domain/locker"
	"lockstream/internal/domain/reservation"
)

// Snapshot stores. Get returns (nil, nil) for an absent id; Put replaces;
// Clear empties the store for a rebuild.

type LockerStore interface {
	Get(ctx context.Context, lockerID string) (*locker.Locker, error)
	Put(ctx context.Context, l *locker.Locker) error
	Clear(ctx context.Context) error
}

type CompartmentStore interface {
	Get(ctx context.Context, lockerID, compartmentID string) (*compartment.Compartment, error)
	ListByLocker(ctx context.Context, lockerID string) ([]*compartment.Compartment, error)
	Put(ctx context.Context, c *compartment.Compartment) error
	Clear(ctx context.Context) error
}

type ReservationStore interface {
	Get(ctx context.Context, reservationID string) (*reservation.Reservation, error)
	CountActiveByLocker(ctx context.Context, lockerID string) (int, error)
	Put(ctx context.Context, r *reservation.Reservation) error
	Clear(ctx context.Context) error
}

type FaultStore interface {
	Get(ctx context.Context, faultID string) (*fault.Fault, error)
	ListOpenByCompartment(ctx context.Context, lockerID, compartmentID string) ([]*fault.Fault, error)
	Put(ctx context.Context, f *fault.Fault) error
	Clear(ctx context.Context) error
}

// EventCursor enumerates stored events in ascending sequence order. Next
// returns io.EOF at the end of the log and an error wrapping
// event.ErrCorruptRecord for a malformed record, after which the cursor is
// still usable.
type EventCursor interface {
	Next() (*event.Event, error)
	Close() error
}

// CursorOpener opens a cursor over events with sequence greater than after.
// It is the replay side of the event store.
type CursorOpener func(after int64) (EventCursor, error)
