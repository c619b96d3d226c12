package queries

import (
	"context"

	"lockstream/internal/domain/reservation"
	"lockstream/internal/pkg/errs"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationReadStore interface {
	Get(ctx context.Context, reservationID string) (*reservation.Reservation, error)
}

type ReservationQueries interface {
	GetStatus(ctx context.Context, reservationID string) (*ReservationStatusView, error)
}

type reservationQueriesImpl struct {
	reservations ReservationReadStore
}

func NewReservationQueries(reservations ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{reservations: reservations}
}

func (q *reservationQueriesImpl) GetStatus(ctx context.Context, reservationID string) (*ReservationStatusView, error) {
	r, err := q.reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReservationNotFound
	}
	return &ReservationStatusView{
		ReservationID: r.ReservationID,
		LockerID:      r.LockerID,
		CompartmentID: r.CompartmentID,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
	}, nil
}
