// Package sqlite provides durable snapshot stores for the projection read
// model, backed by a single SQLite database file. The schema holds only the
// logical projection shape; the event log remains the source of truth and
// the whole database can be discarded and rebuilt from it.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/fault"
	"lockstream/internal/domain/locker"
	"lockstream/internal/domain/reservation"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS lockers (
  locker_id             TEXT PRIMARY KEY,
  status                TEXT NOT NULL,
  compartment_ids       TEXT NOT NULL,
  compartments          INTEGER NOT NULL,
  active_reservations   INTEGER NOT NULL,
  degraded_compartments INTEGER NOT NULL,
  state_hash            TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS compartments (
  locker_id              TEXT NOT NULL,
  compartment_id         TEXT NOT NULL,
  operational_state      TEXT NOT NULL,
  active_fault_ids       TEXT NOT NULL,
  current_reservation_id TEXT,
  PRIMARY KEY (locker_id, compartment_id)
);
CREATE TABLE IF NOT EXISTS reservations (
  reservation_id TEXT PRIMARY KEY,
  locker_id      TEXT NOT NULL,
  compartment_id TEXT NOT NULL,
  status         TEXT NOT NULL,
  created_at     TEXT NOT NULL,
  completed_at   TEXT
);
CREATE INDEX IF NOT EXISTS idx_reservations_locker ON reservations (locker_id);
CREATE TABLE IF NOT EXISTS faults (
  fault_id            TEXT PRIMARY KEY,
  locker_id           TEXT NOT NULL,
  compartment_id      TEXT NOT NULL,
  severity            INTEGER NOT NULL,
  status              TEXT NOT NULL,
  cleared_by_event_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_faults_compartment ON faults (locker_id, compartment_id);
`

// DB wraps the shared handle the per-entity stores hang off.
type DB struct {
	sqlDB *sql.DB
}

// Open opens the snapshot database and creates the projection tables.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot db path is required")
	}
	// modernc.org/sqlite applies pragmas via _pragma= params only.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping snapshot db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}
	return &DB{sqlDB: sqlDB}, nil
}

func (db *DB) Close() error {
	if db == nil || db.sqlDB == nil {
		return nil
	}
	return db.sqlDB.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}

type LockerStore struct{ db *DB }

func NewLockerStore(db *DB) *LockerStore { return &LockerStore{db: db} }

func (s *LockerStore) Get(ctx context.Context, lockerID string) (*locker.Locker, error) {
	row := s.db.sqlDB.QueryRowContext(ctx,
		`SELECT locker_id, status, compartment_ids, compartments, active_reservations, degraded_compartments, state_hash
		 FROM lockers WHERE locker_id = ?`, lockerID)
	var l locker.Locker
	var status, compartmentIDs string
	err := row.Scan(&l.LockerID, &status, &compartmentIDs, &l.Compartments, &l.ActiveReservations, &l.DegradedCompartments, &l.StateHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get locker: %w", err)
	}
	l.Status = locker.Status(status)
	if err := json.Unmarshal([]byte(compartmentIDs), &l.CompartmentIDs); err != nil {
		return nil, fmt.Errorf("decode compartment ids: %w", err)
	}
	return &l, nil
}

func (s *LockerStore) Put(ctx context.Context, l *locker.Locker) error {
	compartmentIDs, err := json.Marshal(l.CompartmentIDs)
	if err != nil {
		return fmt.Errorf("encode compartment ids: %w", err)
	}
	_, err = s.db.sqlDB.ExecContext(ctx,
		`INSERT INTO lockers (locker_id, status, compartment_ids, compartments, active_reservations, degraded_compartments, state_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (locker_id) DO UPDATE SET
		   status = excluded.status,
		   compartment_ids = excluded.compartment_ids,
		   compartments = excluded.compartments,
		   active_reservations = excluded.active_reservations,
		   degraded_compartments = excluded.degraded_compartments,
		   state_hash = excluded.state_hash`,
		l.LockerID, string(l.Status), string(compartmentIDs), l.Compartments, l.ActiveReservations, l.DegradedCompartments, l.StateHash)
	if err != nil {
		return fmt.Errorf("put locker: %w", err)
	}
	return nil
}

func (s *LockerStore) Clear(ctx context.Context) error {
	if _, err := s.db.sqlDB.ExecContext(ctx, `DELETE FROM lockers`); err != nil {
		return fmt.Errorf("clear lockers: %w", err)
	}
	return nil
}

type CompartmentStore struct{ db *DB }

func NewCompartmentStore(db *DB) *CompartmentStore { return &CompartmentStore{db: db} }

func scanCompartment(scan func(dest ...any) error) (*compartment.Compartment, error) {
	var c compartment.Compartment
	var state, faultIDs string
	var reservationID sql.NullString
	if err := scan(&c.LockerID, &c.CompartmentID, &state, &faultIDs, &reservationID); err != nil {
		return nil, err
	}
	c.OperationalState = compartment.OperationalState(state)
	if err := json.Unmarshal([]byte(faultIDs), &c.ActiveFaultIDs); err != nil {
		return nil, fmt.Errorf("decode fault ids: %w", err)
	}
	if reservationID.Valid {
		c.CurrentReservationID = &reservationID.String
	}
	return &c, nil
}

func (s *CompartmentStore) Get(ctx context.Context, lockerID, compartmentID string) (*compartment.Compartment, error) {
	row := s.db.sqlDB.QueryRowContext(ctx,
		`SELECT locker_id, compartment_id, operational_state, active_fault_ids, current_reservation_id
		 FROM compartments WHERE locker_id = ? AND compartment_id = ?`, lockerID, compartmentID)
	c, err := scanCompartment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get compartment: %w", err)
	}
	return c, nil
}

func (s *CompartmentStore) ListByLocker(ctx context.Context, lockerID string) ([]*compartment.Compartment, error) {
	rows, err := s.db.sqlDB.QueryContext(ctx,
		`SELECT locker_id, compartment_id, operational_state, active_fault_ids, current_reservation_id
		 FROM compartments WHERE locker_id = ? ORDER BY compartment_id`, lockerID)
	if err != nil {
		return nil, fmt.Errorf("list compartments: %w", err)
	}
	defer rows.Close()

	var out []*compartment.Compartment
	for rows.Next() {
		c, err := scanCompartment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan compartment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *CompartmentStore) Put(ctx context.Context, c *compartment.Compartment) error {
	faultIDs, err := json.Marshal(c.ActiveFaultIDs)
	if err != nil {
		return fmt.Errorf("encode fault ids: %w", err)
	}
	var reservationID sql.NullString
	if c.CurrentReservationID != nil {
		reservationID = sql.NullString{String: *c.CurrentReservationID, Valid: true}
	}
	_, err = s.db.sqlDB.ExecContext(ctx,
		`INSERT INTO compartments (locker_id, compartment_id, operational_state, active_fault_ids, current_reservation_id)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (locker_id, compartment_id) DO UPDATE SET
		   operational_state = excluded.operational_state,
		   active_fault_ids = excluded.active_fault_ids,
		   current_reservation_id = excluded.current_reservation_id`,
		c.LockerID, c.CompartmentID, string(c.OperationalState), string(faultIDs), reservationID)
	if err != nil {
		return fmt.Errorf("put compartment: %w", err)
	}
	return nil
}

func (s *CompartmentStore) Clear(ctx context.Context) error {
	if _, err := s.db.sqlDB.ExecContext(ctx, `DELETE FROM compartments`); err != nil {
		return fmt.Errorf("clear compartments: %w", err)
	}
	return nil
}

type ReservationStore struct{ db *DB }

func NewReservationStore(db *DB) *ReservationStore { return &ReservationStore{db: db} }

func (s *ReservationStore) Get(ctx context.Context, reservationID string) (*reservation.Reservation, error) {
	row := s.db.sqlDB.QueryRowContext(ctx,
		`SELECT reservation_id, locker_id, compartment_id, status, created_at, completed_at
		 FROM reservations WHERE reservation_id = ?`, reservationID)
	var r reservation.Reservation
	var status, createdAt string
	var completedAt sql.NullString
	err := row.Scan(&r.ReservationID, &r.LockerID, &r.CompartmentID, &status, &createdAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	r.Status = reservation.Status(status)
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("decode completed_at: %w", err)
		}
		r.CompletedAt = &t
	}
	return &r, nil
}

func (s *ReservationStore) CountActiveByLocker(ctx context.Context, lockerID string) (int, error) {
	row := s.db.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE locker_id = ? AND status IN (?, ?)`,
		lockerID, string(reservation.StatusCreated), string(reservation.StatusActive))
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count active reservations: %w", err)
	}
	return count, nil
}

func (s *ReservationStore) Put(ctx context.Context, r *reservation.Reservation) error {
	var completedAt sql.NullString
	if r.CompletedAt != nil {
		completedAt = sql.NullString{String: formatTime(*r.CompletedAt), Valid: true}
	}
	_, err := s.db.sqlDB.ExecContext(ctx,
		`INSERT INTO reservations (reservation_id, locker_id, compartment_id, status, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (reservation_id) DO UPDATE SET
		   status = excluded.status,
		   completed_at = excluded.completed_at`,
		r.ReservationID, r.LockerID, r.CompartmentID, string(r.Status), formatTime(r.CreatedAt), completedAt)
	if err != nil {
		return fmt.Errorf("put reservation: %w", err)
	}
	return nil
}

func (s *ReservationStore) Clear(ctx context.Context) error {
	if _, err := s.db.sqlDB.ExecContext(ctx, `DELETE FROM reservations`); err != nil {
		return fmt.Errorf("clear reservations: %w", err)
	}
	return nil
}

type FaultStore struct{ db *DB }

func NewFaultStore(db *DB) *FaultStore { return &FaultStore{db: db} }

func scanFault(scan func(dest ...any) error) (*fault.Fault, error) {
	var f fault.Fault
	var status string
	var clearedBy sql.NullString
	if err := scan(&f.FaultID, &f.LockerID, &f.CompartmentID, &f.Severity, &status, &clearedBy); err != nil {
		return nil, err
	}
	f.Status = fault.Status(status)
	if clearedBy.Valid {
		f.ClearedByEventID = &clearedBy.String
	}
	return &f, nil
}

func (s *FaultStore) Get(ctx context.Context, faultID string) (*fault.Fault, error) {
	row := s.db.sqlDB.QueryRowContext(ctx,
		`SELECT fault_id, locker_id, compartment_id, severity, status, cleared_by_event_id
		 FROM faults WHERE fault_id = ?`, faultID)
	f, err := scanFault(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get fault: %w", err)
	}
	return f, nil
}

func (s *FaultStore) ListOpenByCompartment(ctx context.Context, lockerID, compartmentID string) ([]*fault.Fault, error) {
	rows, err := s.db.sqlDB.QueryContext(ctx,
		`SELECT fault_id, locker_id, compartment_id, severity, status, cleared_by_event_id
		 FROM faults WHERE locker_id = ? AND compartment_id = ? AND status = ? ORDER BY fault_id`,
		lockerID, compartmentID, string(fault.StatusOpen))
	if err != nil {
		return nil, fmt.Errorf("list open faults: %w", err)
	}
	defer rows.Close()

	var out []*fault.Fault
	for rows.Next() {
		f, err := scanFault(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan fault: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *FaultStore) Put(ctx context.Context, f *fault.Fault) error {
	var clearedBy sql.NullString
	if f.ClearedByEventID != nil {
		clearedBy = sql.NullString{String: *f.ClearedByEventID, Valid: true}
	}
	_, err := s.db.sqlDB.ExecContext(ctx,
		`INSERT INTO faults (fault_id, locker_id, compartment_id, severity, status, cleared_by_event_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (fault_id) DO UPDATE SET
		   status = excluded.status,
		   cleared_by_event_id = excluded.cleared_by_event_id`,
		f.FaultID, f.LockerID, f.CompartmentID, int(f.Severity), string(f.Status), clearedBy)
	if err != nil {
		return fmt.Errorf("put fault: %w", err)
	}
	return nil
}

func (s *FaultStore) Clear(ctx context.Context) error {
	if _, err := s.db.sqlDB.ExecContext(ctx, `DELETE FROM faults`); err != nil {
		return fmt.Errorf("clear faults: %w", err)
	}
	return nil
}
