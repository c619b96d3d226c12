// Package memory provides in-memory snapshot stores for the projection
// read model. Entity state is deep-copied across the store boundary so
// callers can never alias state owned by the projection engine.
package memory

import (
	"context"
	"sync"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/fault"
	"lockstream/internal/domain/locker"
	"lockstream/internal/domain/reservation"

	"github.com/jinzhu/copier"
)

func deepCopy[T any](src *T) (*T, error) {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return &dst, nil
}

type LockerStore struct {
	mu      sync.RWMutex
	lockers map[string]*locker.Locker
}

func NewLockerStore() *LockerStore {
	return &LockerStore{lockers: make(map[string]*locker.Locker)}
}

func (s *LockerStore) Get(_ context.Context, lockerID string) (*locker.Locker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lockers[lockerID]
	if !ok {
		return nil, nil
	}
	return deepCopy(l)
}

func (s *LockerStore) Put(_ context.Context, l *locker.Locker) error {
	stored, err := deepCopy(l)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockers[l.LockerID] = stored
	return nil
}

func (s *LockerStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockers = make(map[string]*locker.Locker)
	return nil
}

type compartmentKey struct {
	lockerID      string
	compartmentID string
}

type CompartmentStore struct {
	mu           sync.RWMutex
	compartments map[compartmentKey]*compartment.Compartment
}

func NewCompartmentStore() *CompartmentStore {
	return &CompartmentStore{compartments: make(map[compartmentKey]*compartment.Compartment)}
}

func (s *CompartmentStore) Get(_ context.Context, lockerID, compartmentID string) (*compartment.Compartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.compartments[compartmentKey{lockerID, compartmentID}]
	if !ok {
		return nil, nil
	}
	return deepCopy(c)
}

func (s *CompartmentStore) ListByLocker(_ context.Context, lockerID string) ([]*compartment.Compartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*compartment.Compartment
	for key, c := range s.compartments {
		if key.lockerID != lockerID {
			continue
		}
		copied, err := deepCopy(c)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

func (s *CompartmentStore) Put(_ context.Context, c *compartment.Compartment) error {
	stored, err := deepCopy(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compartments[compartmentKey{c.LockerID, c.CompartmentID}] = stored
	return nil
}

func (s *CompartmentStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compartments = make(map[compartmentKey]*compartment.Compartment)
	return nil
}

type ReservationStore struct {
	mu           sync.RWMutex
	reservations map[string]*reservation.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{reservations: make(map[string]*reservation.Reservation)}
}

func (s *ReservationStore) Get(_ context.Context, reservationID string) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[reservationID]
	if !ok {
		return nil, nil
	}
	return deepCopy(r)
}

func (s *ReservationStore) CountActiveByLocker(_ context.Context, lockerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.reservations {
		if r.LockerID == lockerID && r.Active() {
			count++
		}
	}
	return count, nil
}

func (s *ReservationStore) Put(_ context.Context, r *reservation.Reservation) error {
	stored, err := deepCopy(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.ReservationID] = stored
	return nil
}

func (s *ReservationStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = make(map[string]*reservation.Reservation)
	return nil
}

type FaultStore struct {
	mu     sync.RWMutex
	faults map[string]*fault.Fault
}

func NewFaultStore() *FaultStore {
	return &FaultStore{faults: make(map[string]*fault.Fault)}
}

func (s *FaultStore) Get(_ context.Context, faultID string) (*fault.Fault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.faults[faultID]
	if !ok {
		return nil, nil
	}
	return deepCopy(f)
}

func (s *FaultStore) ListOpenByCompartment(_ context.Context, lockerID, compartmentID string) ([]*fault.Fault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*fault.Fault
	for _, f := range s.faults {
		if f.LockerID != lockerID || f.CompartmentID != compartmentID || !f.Open() {
			continue
		}
		copied, err := deepCopy(f)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

func (s *FaultStore) Put(_ context.Context, f *fault.Fault) error {
	stored, err := deepCopy(f)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[f.FaultID] = stored
	return nil
}

func (s *FaultStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]*fault.Fault)
	return nil
}
