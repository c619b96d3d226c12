package queries

import (
	"context"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/locker"
	"lockstream/internal/pkg/errs"
)

var (
	ErrLockerNotFound      = errs.New("locker not found")
	ErrCompartmentNotFound = errs.New("compartment not found")
)

// LockerReadStore is the read-only slice of the snapshot the locker queries
// need. Get returns (nil, nil) when the id is absent.
type LockerReadStore interface {
	Get(ctx context.Context, lockerID string) (*locker.Locker, error)
}

type CompartmentReadStore interface {
	Get(ctx context.Context, lockerID, compartmentID string) (*compartment.Compartment, error)
}

type LockerQueries interface {
	GetSummary(ctx context.Context, lockerID string) (*LockerSummaryView, error)
	GetCompartment(ctx context.Context, lockerID, compartmentID string) (*CompartmentStatusView, error)
}

type lockerQueriesImpl struct {
	lockers      LockerReadStore
	compartments CompartmentReadStore
}

func NewLockerQueries(lockers LockerReadStore, compartments CompartmentReadStore) LockerQueries {
	return &lockerQueriesImpl{lockers: lockers, compartments: compartments}
}

func (q *lockerQueriesImpl) GetSummary(ctx context.Context, lockerID string) (*LockerSummaryView, error) {
	l, err := q.lockers.Get(ctx, lockerID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLockerNotFound
	}
	return &LockerSummaryView{
		LockerID:             l.LockerID,
		Status:               string(l.Status),
		CompartmentIDs:       l.CompartmentIDs,
		Compartments:         l.Compartments,
		ActiveReservations:   l.ActiveReservations,
		DegradedCompartments: l.DegradedCompartments,
		StateHash:            l.StateHash,
	}, nil
}

// GetCompartment resolves a compartment scoped under its locker: an existing
// compartment id under the wrong locker is still NotFound.
func (q *lockerQueriesImpl) GetCompartment(ctx context.Context, lockerID, compartmentID string) (*CompartmentStatusView, error) {
	l, err := q.lockers.Get(ctx, lockerID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLockerNotFound
	}
	c, err := q.compartments.Get(ctx, lockerID, compartmentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCompartmentNotFound
	}
	return &CompartmentStatusView{
		CompartmentID:        c.CompartmentID,
		LockerID:             c.LockerID,
		OperationalState:     string(c.OperationalState),
		ActiveFaultIDs:       c.ActiveFaultIDs,
		CurrentReservationID: c.CurrentReservationID,
	}, nil
}
