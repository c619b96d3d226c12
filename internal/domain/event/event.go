// Package event defines the canonical shape of a persisted domain event and
// the validation rules applied before an event enters the store.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Type tags an event. The set is open: producers may emit types this consumer
// has never seen, and those events are stored but fold to a no-op.
type Type string

const (
	TypeLockerRegistered      Type = "LockerRegistered"
	TypeLockerStatusChanged   Type = "LockerStatusChanged"
	TypeCompartmentRegistered Type = "CompartmentRegistered"
	TypeReservationCreated    Type = "ReservationCreated"
	TypeParcelDeposited       Type = "ParcelDeposited"
	TypeParcelPickedUp        Type = "ParcelPickedUp"
	TypeReservationExpired    Type = "ReservationExpired"
	TypeFaultReported         Type = "FaultReported"
	TypeFaultCleared          Type = "FaultCleared"
)

// Known reports whether this consumer has projection logic for the type.
func (t Type) Known() bool {
	switch t {
	case TypeLockerRegistered, TypeLockerStatusChanged, TypeCompartmentRegistered,
		TypeReservationCreated, TypeParcelDeposited, TypeParcelPickedUp,
		TypeReservationExpired, TypeFaultReported, TypeFaultCleared:
		return true
	}
	return false
}

// Event is an immutable fact. EventID is the caller-supplied idempotency key;
// Sequence is assigned by the store at append time and defines replay order.
type Event struct {
	EventID    string         `json:"event_id"`
	Type       Type           `json:"type"`
	LockerID   string         `json:"locker_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Sequence   int64          `json:"sequence,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
}

var (
	ErrMissingField = errors.New("missing or malformed payload field")

	// ErrCorruptRecord marks a stored record that could not be decoded during
	// replay. The record is skipped; replay continues past it.
	ErrCorruptRecord = errors.New("corrupt event record")
)

// String returns the named payload field as a non-empty string.
func (e Event) StringField(key string) (string, error) {
	v, ok := e.Payload[key]
	if !ok {
		return "", fmt.Errorf("%w: %q is required", ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %q must be a non-empty string", ErrMissingField, key)
	}
	return s, nil
}

// Int returns the named payload field as an integer. JSON decoding yields
// float64 for numbers, so both representations are accepted.
func (e Event) IntField(key string) (int, error) {
	v, ok := e.Payload[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q is required", ErrMissingField, key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %q must be an integer", ErrMissingField, key)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q must be an integer", ErrMissingField, key)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%w: %q must be an integer", ErrMissingField, key)
	}
}

// OptionalString returns the named payload field when present as a string.
func (e Event) OptionalString(key string) (string, bool) {
	v, ok := e.Payload[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// requiredFields lists the payload fields each known type must carry.
// Unknown types have no requirements; they are stored and ignored.
var requiredStrings = map[Type][]string{
	TypeLockerStatusChanged:   {"status"},
	TypeCompartmentRegistered: {"compartment_id"},
	TypeReservationCreated:    {"reservation_id", "compartment_id"},
	TypeParcelDeposited:       {"reservation_id"},
	TypeParcelPickedUp:        {"reservation_id"},
	TypeReservationExpired:    {"reservation_id"},
	TypeFaultReported:         {"compartment_id"},
	TypeFaultCleared:          {"compartment_id", "fault_event_id"},
}

// Validate checks the envelope and, for known types, the required payload
// fields. It never rejects an unknown type.
func Validate(e Event) error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id", ErrMissingField)
	}
	if e.Type == "" {
		return fmt.Errorf("%w: type", ErrMissingField)
	}
	if e.LockerID == "" {
		return fmt.Errorf("%w: locker_id", ErrMissingField)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("%w: occurred_at", ErrMissingField)
	}
	for _, key := range requiredStrings[e.Type] {
		if _, err := e.StringField(key); err != nil {
			return err
		}
	}
	if e.Type == TypeFaultReported {
		if _, err := e.IntField("severity"); err != nil {
			return err
		}
	}
	return nil
}
