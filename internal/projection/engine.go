// Package projection folds the ordered event stream through the domain state
// machines and owns the materialized read-model snapshot. The engine is the
// single owner of that snapshot: incremental Apply and full Rebuild are
// serialized behind one mutex so a rebuild can never interleave with applies.
package projection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/event"
	"lockstream/internal/domain/fault"
	"lockstream/internal/domain/locker"
	"lockstream/internal/domain/reservation"
	"lockstream/internal/pkg/errs"
)

// Engine derives current entity state from events. All domain-level
// irregularities degrade to no-ops plus an anomaly record; only storage
// failures propagate to the caller.
type Engine struct {
	mu sync.Mutex

	lockers      LockerStore
	compartments CompartmentStore
	reservations ReservationStore
	faults       FaultStore

	openCursor CursorOpener
	threshold  fault.Severity
	logger     *slog.Logger

	anomalies int
}

func NewEngine(
	lockers LockerStore,
	compartments CompartmentStore,
	reservations ReservationStore,
	faults FaultStore,
	openCursor CursorOpener,
	threshold fault.Severity,
	logger *slog.Logger,
) *Engine {
	if threshold <= 0 {
		threshold = fault.DefaultOutOfServiceThreshold
	}
	return &Engine{
		lockers:      lockers,
		compartments: compartments,
		reservations: reservations,
		faults:       faults,
		openCursor:   openCursor,
		threshold:    threshold,
		logger:       logger,
	}
}

// Apply folds one event into the snapshot. Used by ingestion after a
// successful append; the same code path runs during Rebuild, which is what
// makes replay deterministic.
func (e *Engine) Apply(ctx context.Context, ev event.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(ctx, ev)
}

// RebuildResult reports what a full replay processed.
type RebuildResult struct {
	ReplayedEvents int
	CorruptRecords int
	Anomalies      int
}

// Rebuild discards the snapshot and replays the entire log in sequence
// order. It is stop-the-world with respect to the snapshot: Apply calls
// block until the rebuild finishes. Always safe, always terminates in the
// length of the log.
func (e *Engine) Rebuild(ctx context.Context) (RebuildResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result RebuildResult

	for _, clear := range []func(context.Context) error{
		e.faults.Clear, e.reservations.Clear, e.compartments.Clear, e.lockers.Clear,
	} {
		if err := clear(ctx); err != nil {
			return result, errs.Wrap(err, "clear projection snapshot")
		}
	}

	cursor, err := e.openCursor(0)
	if err != nil {
		return result, errs.Wrap(err, "open event log cursor")
	}
	defer cursor.Close()

	anomaliesBefore := e.anomalies
	for {
		ev, err := cursor.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, event.ErrCorruptRecord) {
			result.CorruptRecords++
			e.logger.Warn("skipping corrupt record during rebuild", "error", err)
			continue
		}
		if err != nil {
			return result, errs.Wrap(err, "read event log")
		}
		if err := e.apply(ctx, *ev); err != nil {
			return result, errs.Wrap(err, "apply event during rebuild")
		}
		result.ReplayedEvents++
	}
	result.Anomalies = e.anomalies - anomaliesBefore
	return result, nil
}

// Anomalies returns the number of anomalous transitions recorded since the
// engine was created.
func (e *Engine) Anomalies() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.anomalies
}

// apply runs one event through the relevant machines and persists the
// results. Caller holds the mutex.
func (e *Engine) apply(ctx context.Context, ev event.Event) error {
	if !ev.Type.Known() {
		// Stored, but this consumer has no projection logic for it.
		e.logger.Debug("ignoring event of unknown type",
			slog.String("event_id", ev.EventID),
			slog.String("event_type", string(ev.Type)),
		)
		return nil
	}

	var notices []event.Notice

	switch ev.Type {
	case event.TypeFaultReported, event.TypeFaultCleared:
		ns, err := e.applyFaultEvent(ctx, ev)
		if err != nil {
			return err
		}
		notices = ns
	case event.TypeReservationCreated, event.TypeParcelDeposited,
		event.TypeParcelPickedUp, event.TypeReservationExpired:
		ns, err := e.applyReservationEvent(ctx, ev)
		if err != nil {
			return err
		}
		notices = ns
	case event.TypeLockerRegistered, event.TypeLockerStatusChanged,
		event.TypeCompartmentRegistered:
		ns, err := e.applyLockerEvent(ctx, ev)
		if err != nil {
			return err
		}
		notices = ns
	}

	e.record(ev, notices)
	return e.refreshLockerSummary(ctx, ev.LockerID)
}

func (e *Engine) applyLockerEvent(ctx context.Context, ev event.Event) ([]event.Notice, error) {
	cur, err := e.lockers.Get(ctx, ev.LockerID)
	if err != nil {
		return nil, err
	}
	lt := locker.Apply(cur, ev)
	if lt.Changed {
		if err := e.lockers.Put(ctx, lt.Next); err != nil {
			return nil, err
		}
	}
	notices := lt.Notices

	if ev.Type == event.TypeCompartmentRegistered {
		compartmentID, fieldErr := ev.StringField("compartment_id")
		if fieldErr != nil {
			return append(notices, event.Conflict("compartment", "", ev.EventID, fieldErr.Error())), nil
		}
		curComp, err := e.compartments.Get(ctx, ev.LockerID, compartmentID)
		if err != nil {
			return nil, err
		}
		ct := compartment.Apply(curComp, ev, compartment.Context{})
		if ct.Changed {
			if err := e.compartments.Put(ctx, ct.Next); err != nil {
				return nil, err
			}
		}
		notices = append(notices, ct.Notices...)
	}
	return notices, nil
}

func (e *Engine) applyReservationEvent(ctx context.Context, ev event.Event) ([]event.Notice, error) {
	// Resolve the compartment the event refers to: directly from the payload
	// for creation, through the reservation for lifecycle events.
	cur, compView, comp, err := e.resolveReservation(ctx, ev)
	if err != nil {
		return nil, err
	}

	rt := reservation.Apply(cur, ev, compView)
	if rt.Changed {
		if err := e.reservations.Put(ctx, rt.Next); err != nil {
			return nil, err
		}
	}
	notices := rt.Notices

	if comp != nil {
		// The compartment only releases its slot when the reservation machine
		// actually closed the reservation; a no-op transition must not free it.
		reservationID := ""
		if cur != nil && rt.Changed && rt.Next.Status.Terminal() {
			reservationID = cur.ReservationID
		}
		ct := compartment.Apply(comp, ev, compartment.Context{
			ReservationAccepted: rt.Accepted,
			ReservationID:       reservationID,
		})
		if ct.Changed {
			if err := e.compartments.Put(ctx, ct.Next); err != nil {
				return nil, err
			}
		}
		notices = append(notices, ct.Notices...)
	}
	return notices, nil
}

func (e *Engine) resolveReservation(ctx context.Context, ev event.Event) (*reservation.Reservation, reservation.CompartmentView, *compartment.Compartment, error) {
	var cur *reservation.Reservation
	if reservationID, ok := ev.OptionalString("reservation_id"); ok {
		var err error
		cur, err = e.reservations.Get(ctx, reservationID)
		if err != nil {
			return nil, reservation.CompartmentView{}, nil, err
		}
	}

	// Creation targets the payload compartment under the envelope locker;
	// lifecycle events target the compartment the reservation is bound to,
	// keyed by the reservation's own locker. The envelope locker is not
	// trusted here: a mis-tagged lifecycle event must still resolve the real
	// compartment so its slot can never be left dangling.
	compartmentID := ""
	lockerID := ev.LockerID
	if ev.Type == event.TypeReservationCreated {
		if id, ok := ev.OptionalString("compartment_id"); ok {
			compartmentID = id
		}
	} else if cur != nil {
		compartmentID = cur.CompartmentID
		lockerID = cur.LockerID
	} else if id, ok := ev.OptionalString("compartment_id"); ok {
		compartmentID = id
	}
	if compartmentID == "" {
		return cur, reservation.CompartmentView{}, nil, nil
	}

	comp, err := e.compartments.Get(ctx, lockerID, compartmentID)
	if err != nil {
		return nil, reservation.CompartmentView{}, nil, err
	}
	view := reservation.CompartmentView{}
	if comp != nil {
		view.Exists = true
		view.OutOfService = comp.OutOfService()
		view.ActiveReservationID = comp.CurrentReservationID
	}
	return cur, view, comp, nil
}

func (e *Engine) applyFaultEvent(ctx context.Context, ev event.Event) ([]event.Notice, error) {
	compartmentID, fieldErr := ev.StringField("compartment_id")
	if fieldErr != nil {
		return []event.Notice{event.Conflict("fault", "", ev.EventID, fieldErr.Error())}, nil
	}
	comp, err := e.compartments.Get(ctx, ev.LockerID, compartmentID)
	if err != nil {
		return nil, err
	}

	faultID := ev.EventID
	if ev.Type == event.TypeFaultCleared {
		if id, ok := ev.OptionalString("fault_event_id"); ok {
			faultID = id
		}
	}
	cur, err := e.faults.Get(ctx, faultID)
	if err != nil {
		return nil, err
	}

	ft := fault.Apply(cur, ev, fault.Context{CompartmentExists: comp != nil})
	if ft.Changed {
		if err := e.faults.Put(ctx, ft.Next); err != nil {
			return nil, err
		}
	}
	notices := ft.Notices

	if comp != nil && ft.Changed {
		open, err := e.faults.ListOpenByCompartment(ctx, ev.LockerID, compartmentID)
		if err != nil {
			return nil, err
		}
		ct := compartment.Apply(comp, ev, compartment.Context{
			OpenFaults: open,
			Threshold:  e.threshold,
		})
		if ct.Changed {
			if err := e.compartments.Put(ctx, ct.Next); err != nil {
				return nil, err
			}
		}
		notices = append(notices, ct.Notices...)
	}
	return notices, nil
}

// refreshLockerSummary recomputes the locker's derived counters from the
// snapshot rather than adjusting them in place, so the counters can never
// drift from the entity states they summarize.
func (e *Engine) refreshLockerSummary(ctx context.Context, lockerID string) error {
	l, err := e.lockers.Get(ctx, lockerID)
	if err != nil || l == nil {
		return err
	}
	active, err := e.reservations.CountActiveByLocker(ctx, lockerID)
	if err != nil {
		return err
	}
	comps, err := e.compartments.ListByLocker(ctx, lockerID)
	if err != nil {
		return err
	}
	degraded := 0
	for _, c := range comps {
		if c.OperationalState != compartment.StateNormal {
			degraded++
		}
	}
	if l.ActiveReservations == active && l.DegradedCompartments == degraded {
		return nil
	}
	l.SetCounts(active, degraded)
	return e.lockers.Put(ctx, l)
}

func (e *Engine) record(ev event.Event, notices []event.Notice) {
	for _, n := range notices {
		e.anomalies++
		e.logger.Warn("anomalous transition",
			slog.String("code", string(n.Code)),
			slog.String("entity", n.Entity),
			slog.String("entity_id", n.ID),
			slog.String("event_id", ev.EventID),
			slog.String("event_type", string(ev.Type)),
			slog.String("reason", n.Reason),
		)
	}
}
