package response

import (
	"time"

	"lockstream/internal/usecase/queries"
)

type ReservationStatusResponse struct {
	ReservationID string     `json:"reservationId"`
	LockerID      string     `json:"lockerId"`
	CompartmentID string     `json:"compartmentId"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

func FromReservationStatusView(v *queries.ReservationStatusView) *ReservationStatusResponse {
	return &ReservationStatusResponse{
		ReservationID: v.ReservationID,
		LockerID:      v.LockerID,
		CompartmentID: v.CompartmentID,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		CompletedAt:   v.CompletedAt,
	}
}
