// Package fault holds the fault projection and its transition function.
// A fault is keyed by the event_id of the FaultReported event that opened it.
package fault

import (
	"fmt"

	"lockstream/internal/domain/event"
)

// Severity is an ordered scale. A compartment's operational state is derived
// from the highest severity among its open faults.
type Severity int

const (
	SeverityMinor    Severity = 1
	SeverityMajor    Severity = 2
	SeverityCritical Severity = 3
)

// DefaultOutOfServiceThreshold is the severity at or above which a
// compartment goes out of service.
const DefaultOutOfServiceThreshold = SeverityCritical

type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

type Fault struct {
	FaultID          string   `json:"fault_id"`
	LockerID         string   `json:"locker_id"`
	CompartmentID    string   `json:"compartment_id"`
	Severity         Severity `json:"severity"`
	Status           Status   `json:"status"`
	ClearedByEventID *string  `json:"cleared_by_event_id,omitempty"`
}

func (f *Fault) Open() bool {
	return f.Status == StatusOpen
}

func (f *Fault) clone() *Fault {
	next := *f
	if f.ClearedByEventID != nil {
		id := *f.ClearedByEventID
		next.ClearedByEventID = &id
	}
	return &next
}

// Context carries the collaborator state a fault transition needs.
type Context struct {
	// CompartmentExists reports whether the referenced compartment is known
	// to the projection. Faults against unregistered compartments are no-ops.
	CompartmentExists bool
}

// Transition is the outcome of folding one event through the machine.
type Transition struct {
	Next    *Fault
	Changed bool
	Notices []event.Notice
}

func unchanged(cur *Fault, notices ...event.Notice) Transition {
	return Transition{Next: cur, Notices: notices}
}

// Apply folds one event into the fault state. It is total: any event the
// machine does not care about, including unknown types, leaves state as is.
func Apply(cur *Fault, ev event.Event, ctx Context) Transition {
	switch ev.Type {
	case event.TypeFaultReported:
		return applyReported(cur, ev, ctx)
	case event.TypeFaultCleared:
		return applyCleared(cur, ev, ctx)
	default:
		return unchanged(cur)
	}
}

func applyReported(cur *Fault, ev event.Event, ctx Context) Transition {
	compartmentID, err := ev.StringField("compartment_id")
	if err != nil {
		return unchanged(cur, event.Conflict("fault", "", ev.EventID, err.Error()))
	}
	raw, err := ev.IntField("severity")
	if err != nil {
		return unchanged(cur, event.Conflict("fault", "", ev.EventID, err.Error()))
	}
	severity, err := ParseSeverity(raw)
	if err != nil {
		return unchanged(cur, event.Conflict("fault", "", ev.EventID, err.Error()))
	}
	if !ctx.CompartmentExists {
		return unchanged(cur, event.UnknownEntity("compartment", compartmentID, ev.EventID,
			"fault reported against unregistered compartment"))
	}
	if cur != nil {
		return unchanged(cur, event.Conflict("fault", cur.FaultID, ev.EventID,
			"fault already reported for this event id"))
	}
	return Transition{
		Next: &Fault{
			FaultID:       ev.EventID,
			LockerID:      ev.LockerID,
			CompartmentID: compartmentID,
			Severity:      severity,
			Status:        StatusOpen,
		},
		Changed: true,
	}
}

func applyCleared(cur *Fault, ev event.Event, ctx Context) Transition {
	compartmentID, err := ev.StringField("compartment_id")
	if err != nil {
		return unchanged(cur, event.Conflict("fault", "", ev.EventID, err.Error()))
	}
	faultID, err := ev.StringField("fault_event_id")
	if err != nil {
		return unchanged(cur, event.Conflict("fault", "", ev.EventID, err.Error()))
	}
	if !ctx.CompartmentExists {
		return unchanged(cur, event.UnknownEntity("compartment", compartmentID, ev.EventID,
			"fault cleared against unregistered compartment"))
	}
	if cur == nil {
		return unchanged(cur, event.UnknownEntity("fault", faultID, ev.EventID,
			"referenced fault does not exist"))
	}
	if cur.LockerID != ev.LockerID || cur.CompartmentID != compartmentID {
		return unchanged(cur, event.Conflict("fault", cur.FaultID, ev.EventID,
			"referenced fault belongs to a different compartment"))
	}
	if !cur.Open() {
		return unchanged(cur, event.Conflict("fault", cur.FaultID, ev.EventID,
			"fault is already cleared"))
	}
	next := cur.clone()
	next.Status = StatusResolved
	clearedBy := ev.EventID
	next.ClearedByEventID = &clearedBy
	return Transition{Next: next, Changed: true}
}

// MaxOpenSeverity returns the highest severity among open faults, or zero
// when none are open. Ties resolve to the maximum, never to recency.
func MaxOpenSeverity(faults []*Fault) Severity {
	var max Severity
	for _, f := range faults {
		if f.Open() && f.Severity > max {
			max = f.Severity
		}
	}
	return max
}

// ParseSeverity validates a raw severity value from an event payload.
func ParseSeverity(raw int) (Severity, error) {
	if raw < int(SeverityMinor) {
		return 0, fmt.Errorf("severity must be at least %d", SeverityMinor)
	}
	return Severity(raw), nil
}
