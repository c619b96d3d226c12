package queries

import "time"

// Read models (DTOs for the read side). Purely views over the projection
// snapshot; queries never touch the event store.

type LockerSummaryView struct {
	LockerID             string   `json:"locker_id"`
	Status               string   `json:"status"`
	CompartmentIDs       []string `json:"compartment_ids"`
	Compartments         int      `json:"compartments"`
	ActiveReservations   int      `json:"active_reservations"`
	DegradedCompartments int      `json:"degraded_compartments"`
	StateHash            string   `json:"state_hash"`
}

type CompartmentStatusView struct {
	CompartmentID        string   `json:"compartment_id"`
	LockerID             string   `json:"locker_id"`
	OperationalState     string   `json:"operational_state"`
	ActiveFaultIDs       []string `json:"active_fault_ids"`
	CurrentReservationID *string  `json:"current_reservation_id,omitempty"`
}

type ReservationStatusView struct {
	ReservationID string     `json:"reservation_id"`
	LockerID      string     `json:"locker_id"`
	CompartmentID string     `json:"compartment_id"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
