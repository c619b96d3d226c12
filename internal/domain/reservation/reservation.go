// Package reservation holds the reservation projection and its transition
// function. created -> active -> completed, or cancelled; completed and
// cancelled are terminal.
package reservation

import (
	"time"

	"lockstream/internal/domain/event"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Reservation struct {
	ReservationID string     `json:"reservation_id"`
	LockerID      string     `json:"locker_id"`
	CompartmentID string     `json:"compartment_id"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func (r *Reservation) Active() bool {
	return !r.Status.Terminal()
}

func (r *Reservation) clone() *Reservation {
	next := *r
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		next.CompletedAt = &t
	}
	return &next
}

// CompartmentView is the slice of compartment state the reservation machine
// needs; the engine resolves it from the snapshot.
type CompartmentView struct {
	Exists              bool
	OutOfService        bool
	ActiveReservationID *string
}

type Transition struct {
	Next    *Reservation
	Changed bool
	// Accepted is set when a ReservationCreated event actually created the
	// reservation, so the compartment machine knows to assign itself.
	Accepted bool
	Notices  []event.Notice
}

func unchanged(cur *Reservation, notices ...event.Notice) Transition {
	return Transition{Next: cur, Notices: notices}
}

// Apply folds one event into the reservation state.
func Apply(cur *Reservation, ev event.Event, comp CompartmentView) Transition {
	switch ev.Type {
	case event.TypeReservationCreated:
		return applyCreated(cur, ev, comp)
	case event.TypeParcelDeposited:
		return applyDeposited(cur, ev, comp)
	case event.TypeParcelPickedUp:
		return applyPickedUp(cur, ev, comp)
	case event.TypeReservationExpired:
		return applyExpired(cur, ev)
	default:
		return unchanged(cur)
	}
}

func applyCreated(cur *Reservation, ev event.Event, comp CompartmentView) Transition {
	reservationID, err := ev.StringField("reservation_id")
	if err != nil {
		return unchanged(cur, event.Conflict("reservation", "", ev.EventID, err.Error()))
	}
	compartmentID, err := ev.StringField("compartment_id")
	if err != nil {
		return unchanged(cur, event.Conflict("reservation", reservationID, ev.EventID, err.Error()))
	}
	if !comp.Exists {
		return unchanged(cur, event.UnknownEntity("compartment", compartmentID, ev.EventID,
			"reservation created against unregistered compartment"))
	}
	if cur != nil {
		return unchanged(cur, event.Conflict("reservation", reservationID, ev.EventID,
			"reservation id is already in use"))
	}
	if comp.OutOfService {
		return unchanged(cur, event.Conflict("compartment", compartmentID, ev.EventID,
			"compartment is out of service"))
	}
	// First valid reservation wins; later creates against an occupied
	// compartment are no-ops.
	if comp.ActiveReservationID != nil {
		return unchanged(cur, event.Conflict("compartment", compartmentID, ev.EventID,
			"compartment already holds an active reservation"))
	}
	return Transition{
		Next: &Reservation{
			ReservationID: reservationID,
			LockerID:      ev.LockerID,
			CompartmentID: compartmentID,
			Status:        StatusCreated,
			CreatedAt:     ev.OccurredAt,
		},
		Changed:  true,
		Accepted: true,
	}
}

func applyDeposited(cur *Reservation, ev event.Event, comp CompartmentView) Transition {
	reservationID, err := ev.StringField("reservation_id")
	if err != nil {
		return unchanged(cur, event.Conflict("reservation", "", ev.EventID, err.Error()))
	}
	if cur == nil {
		return unchanged(cur, event.UnknownEntity("reservation", reservationID, ev.EventID,
			"deposit against unknown reservation"))
	}
	if notice, ok := lockerMismatch(cur, ev); ok {
		return unchanged(cur, notice)
	}
	if notice, ok := compartmentMismatch(cur, ev); ok {
		return unchanged(cur, notice)
	}
	if cur.Status != StatusCreated {
		return unchanged(cur, event.Conflict("reservation", cur.ReservationID, ev.EventID,
			"deposit requires status created, reservation is "+string(cur.Status)))
	}
	if comp.OutOfService {
		return unchanged(cur, event.Conflict("reservation", cur.ReservationID, ev.EventID,
			"compartment is out of service"))
	}
	next := cur.clone()
	next.Status = StatusActive
	return Transition{Next: next, Changed: true}
}

func applyPickedUp(cur *Reservation, ev event.Event, comp CompartmentView) Transition {
	reservationID, err := ev.StringField("reservation_id")
	if err != nil {
		return unchanged(cur, event.Conflict("reservation", "", ev.EventID, err.Error()))
	}
	if cur == nil {
		return unchanged(cur, event.UnknownEntity("reservation", reservationID, ev.EventID,
			"pickup against unknown reservation"))
	}
	if notice, ok := lockerMismatch(cur, ev); ok {
		return unchanged(cur, notice)
	}
	if notice, ok := compartmentMismatch(cur, ev); ok {
		return unchanged(cur, notice)
	}
	if cur.Status != StatusActive {
		return unchanged(cur, event.Conflict("reservation", cur.ReservationID, ev.EventID,
			"pickup requires status active, reservation is "+string(cur.Status)))
	}
	if comp.OutOfService {
		return unchanged(cur, event.Conflict("reservation", cur.ReservationID, ev.EventID,
			"compartment is out of service"))
	}
	next := cur.clone()
	next.Status = StatusCompleted
	completedAt := ev.OccurredAt
	next.CompletedAt = &completedAt
	return Transition{Next: next, Changed: true}
}

func applyExpired(cur *Reservation, ev event.Event) Transition {
	reservationID, err := ev.StringField("reservation_id")
	if err != nil {
		return unchanged(cur, event.Conflict("reservation", "", ev.EventID, err.Error()))
	}
	if cur == nil {
		return unchanged(cur, event.UnknownEntity("reservation", reservationID, ev.EventID,
			"expiry against unknown reservation"))
	}
	if notice, ok := lockerMismatch(cur, ev); ok {
		return unchanged(cur, notice)
	}
	if cur.Status.Terminal() {
		return unchanged(cur, event.Conflict("reservation", cur.ReservationID, ev.EventID,
			"reservation is already "+string(cur.Status)))
	}
	next := cur.clone()
	next.Status = StatusCancelled
	completedAt := ev.OccurredAt
	next.CompletedAt = &completedAt
	return Transition{Next: next, Changed: true}
}

// lockerMismatch guards lifecycle events whose envelope names a different
// locker than the reservation was created under. Closing the reservation
// anyway would leave its compartment pointing at a terminal reservation, so
// the transition is refused and the slot stays consistent.
func lockerMismatch(cur *Reservation, ev event.Event) (event.Notice, bool) {
	if ev.LockerID == cur.LockerID {
		return event.Notice{}, false
	}
	return event.Conflict("reservation", cur.ReservationID, ev.EventID,
		"event locker does not match reservation locker"), true
}

func compartmentMismatch(cur *Reservation, ev event.Event) (event.Notice, bool) {
	payloadCompartment, ok := ev.OptionalString("compartment_id")
	if !ok || payloadCompartment == cur.CompartmentID {
		return event.Notice{}, false
	}
	return event.Conflict("reservation", cur.ReservationID, ev.EventID,
		"event compartment does not match reservation compartment"), true
}
