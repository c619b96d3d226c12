// Package locker holds the locker summary projection and its transition
// function. The summary counters are recomputed from the compartment and
// reservation snapshots after every fold, and StateHash is a deterministic
// digest of the summary used to witness replay determinism.
package locker

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"lockstream/internal/domain/event"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusOffline Status = "offline"
)

func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusActive, StatusOffline:
		return Status(raw), true
	}
	return "", false
}

type Locker struct {
	LockerID             string   `json:"locker_id"`
	Status               Status   `json:"status"`
	CompartmentIDs       []string `json:"compartment_ids,omitempty"`
	Compartments         int      `json:"compartments"`
	ActiveReservations   int      `json:"active_reservations"`
	DegradedCompartments int      `json:"degraded_compartments"`
	StateHash            string   `json:"state_hash"`
}

func New(lockerID string) *Locker {
	l := &Locker{LockerID: lockerID, Status: StatusActive}
	l.Rehash()
	return l
}

func (l *Locker) clone() *Locker {
	next := *l
	next.CompartmentIDs = append([]string(nil), l.CompartmentIDs...)
	return &next
}

// SetCounts installs the derived counters and refreshes the state hash.
func (l *Locker) SetCounts(activeReservations, degradedCompartments int) {
	l.ActiveReservations = activeReservations
	l.DegradedCompartments = degradedCompartments
	l.Rehash()
}

// Rehash recomputes StateHash as the SHA-256 of the canonical JSON of the
// summary fields. encoding/json writes map keys in sorted order, which keeps
// the digest stable across rebuilds.
func (l *Locker) Rehash() string {
	raw, _ := json.Marshal(map[string]any{
		"locker_id":             l.LockerID,
		"status":                string(l.Status),
		"compartments":          l.Compartments,
		"active_reservations":   l.ActiveReservations,
		"degraded_compartments": l.DegradedCompartments,
	})
	sum := sha256.Sum256(raw)
	l.StateHash = hex.EncodeToString(sum[:])
	return l.StateHash
}

type Transition struct {
	Next    *Locker
	Changed bool
	Notices []event.Notice
}

func unchanged(cur *Locker, notices ...event.Notice) Transition {
	return Transition{Next: cur, Notices: notices}
}

// Apply folds one event into the locker state. Lockers are also created
// implicitly by the first CompartmentRegistered event, matching producers
// that never emit an explicit LockerRegistered.
func Apply(cur *Locker, ev event.Event) Transition {
	switch ev.Type {
	case event.TypeLockerRegistered:
		if cur != nil {
			return unchanged(cur, event.Conflict("locker", cur.LockerID, ev.EventID,
				"locker is already registered"))
		}
		return Transition{Next: New(ev.LockerID), Changed: true}

	case event.TypeLockerStatusChanged:
		raw, err := ev.StringField("status")
		if err != nil {
			return unchanged(cur, event.Conflict("locker", ev.LockerID, ev.EventID, err.Error()))
		}
		status, ok := ParseStatus(raw)
		if !ok {
			return unchanged(cur, event.Conflict("locker", ev.LockerID, ev.EventID,
				"unknown locker status "+raw))
		}
		if cur == nil {
			return unchanged(cur, event.UnknownEntity("locker", ev.LockerID, ev.EventID,
				"status change for unregistered locker"))
		}
		if cur.Status == status {
			return unchanged(cur)
		}
		next := cur.clone()
		next.Status = status
		next.Rehash()
		return Transition{Next: next, Changed: true}

	case event.TypeCompartmentRegistered:
		compartmentID, err := ev.StringField("compartment_id")
		if err != nil {
			return unchanged(cur)
		}
		next := cur
		if next == nil {
			next = New(ev.LockerID)
		} else {
			next = cur.clone()
		}
		if containsID(next.CompartmentIDs, compartmentID) {
			// The compartment machine reports the duplicate registration.
			return unchanged(cur)
		}
		next.CompartmentIDs = append(next.CompartmentIDs, compartmentID)
		sort.Strings(next.CompartmentIDs)
		next.Compartments = len(next.CompartmentIDs)
		next.Rehash()
		return Transition{Next: next, Changed: true}

	default:
		return unchanged(cur)
	}
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
