// Package compartment holds the compartment projection and its transition
// function. A compartment's operational state is never set directly: it is
// derived from the severities of its currently open faults.
package compartment

import (
	"sort"

	"lockstream/internal/domain/event"
	"lockstream/internal/domain/fault"
)

type OperationalState string

const (
	StateNormal       OperationalState = "normal"
	StateDegraded     OperationalState = "degraded"
	StateOutOfService OperationalState = "out_of_service"
)

type Compartment struct {
	LockerID             string           `json:"locker_id"`
	CompartmentID        string           `json:"compartment_id"`
	OperationalState     OperationalState `json:"operational_state"`
	ActiveFaultIDs       []string         `json:"active_fault_ids,omitempty"`
	CurrentReservationID *string          `json:"current_reservation_id,omitempty"`
}

func (c *Compartment) OutOfService() bool {
	return c.OperationalState == StateOutOfService
}

func (c *Compartment) Occupied() bool {
	return c.CurrentReservationID != nil
}

func (c *Compartment) clone() *Compartment {
	next := *c
	next.ActiveFaultIDs = append([]string(nil), c.ActiveFaultIDs...)
	if c.CurrentReservationID != nil {
		id := *c.CurrentReservationID
		next.CurrentReservationID = &id
	}
	return &next
}

// DeriveState computes the operational state from the open fault set. No open
// faults means normal; the highest open severity decides between degraded and
// out of service.
func DeriveState(openFaults []*fault.Fault, threshold fault.Severity) OperationalState {
	max := fault.MaxOpenSeverity(openFaults)
	switch {
	case max == 0:
		return StateNormal
	case max >= threshold:
		return StateOutOfService
	default:
		return StateDegraded
	}
}

// Context carries the collaborator state a compartment transition needs. The
// projection engine assembles it from the snapshot after folding the event
// through the fault and reservation machines.
type Context struct {
	// ReservationAccepted reports whether the reservation machine accepted a
	// ReservationCreated event; the compartment only assigns itself when both
	// machines agree.
	ReservationAccepted bool
	// ReservationID names the reservation that a lifecycle event closed;
	// empty when no reservation was closed by the event.
	ReservationID string
	// OpenFaults is the compartment's open fault set after the fault machine
	// ran, used to recompute the derived operational state.
	OpenFaults []*fault.Fault
	Threshold  fault.Severity
}

type Transition struct {
	Next    *Compartment
	Changed bool
	Notices []event.Notice
}

func unchanged(cur *Compartment, notices ...event.Notice) Transition {
	return Transition{Next: cur, Notices: notices}
}

// Apply folds one event into the compartment state.
func Apply(cur *Compartment, ev event.Event, ctx Context) Transition {
	switch ev.Type {
	case event.TypeCompartmentRegistered:
		return applyRegistered(cur, ev)
	case event.TypeReservationCreated:
		return applyReservationCreated(cur, ev, ctx)
	case event.TypeParcelPickedUp, event.TypeReservationExpired:
		return applyReservationClosed(cur, ctx)
	case event.TypeFaultReported, event.TypeFaultCleared:
		return applyFaultChanged(cur, ctx)
	default:
		return unchanged(cur)
	}
}

func applyRegistered(cur *Compartment, ev event.Event) Transition {
	compartmentID, err := ev.StringField("compartment_id")
	if err != nil {
		return unchanged(cur, event.Conflict("compartment", "", ev.EventID, err.Error()))
	}
	if cur != nil {
		return unchanged(cur, event.Conflict("compartment", compartmentID, ev.EventID,
			"compartment is already registered"))
	}
	return Transition{
		Next: &Compartment{
			LockerID:         ev.LockerID,
			CompartmentID:    compartmentID,
			OperationalState: StateNormal,
		},
		Changed: true,
	}
}

func applyReservationCreated(cur *Compartment, ev event.Event, ctx Context) Transition {
	if cur == nil || !ctx.ReservationAccepted {
		// The reservation machine already emitted the anomaly.
		return unchanged(cur)
	}
	reservationID, err := ev.StringField("reservation_id")
	if err != nil {
		return unchanged(cur)
	}
	next := cur.clone()
	next.CurrentReservationID = &reservationID
	return Transition{Next: next, Changed: true}
}

func applyReservationClosed(cur *Compartment, ctx Context) Transition {
	if cur == nil {
		return unchanged(cur)
	}
	// Only release the slot if it still points at the closing reservation.
	if cur.CurrentReservationID == nil || *cur.CurrentReservationID != ctx.ReservationID {
		return unchanged(cur)
	}
	next := cur.clone()
	next.CurrentReservationID = nil
	return Transition{Next: next, Changed: true}
}

func applyFaultChanged(cur *Compartment, ctx Context) Transition {
	if cur == nil {
		return unchanged(cur)
	}
	next := cur.clone()
	next.OperationalState = DeriveState(ctx.OpenFaults, ctx.Threshold)
	next.ActiveFaultIDs = openFaultIDs(ctx.OpenFaults)
	if next.OperationalState == cur.OperationalState && equalIDs(next.ActiveFaultIDs, cur.ActiveFaultIDs) {
		return unchanged(cur)
	}
	return Transition{Next: next, Changed: true}
}

func openFaultIDs(faults []*fault.Fault) []string {
	var ids []string
	for _, f := range faults {
		if f.Open() {
			ids = append(ids, f.FaultID)
		}
	}
	sort.Strings(ids)
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
