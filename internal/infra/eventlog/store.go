// Package eventlog implements the append-only event store over a JSONL file:
// one JSON record per line, independently parseable. The duplicate index and
// last sequence are derived from the log itself at Open, so idempotency
// survives process restarts without an auxiliary index.
package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"lockstream/internal/domain/event"
	"lockstream/internal/infra"
)

// Store owns the log under single-writer discipline: the mutex makes
// duplicate detection, sequence assignment and the append itself atomic with
// respect to each other. Reads go through independent cursors and never
// touch the write handle.
type Store struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	ids     map[string]struct{}
	lastSeq int64
	logger  *slog.Logger
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, infra.WrapRepoErr(logger, infra.KindIOFailure, "create event log directory", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, infra.WrapRepoErr(logger, infra.KindIOFailure, "open event log", err)
	}

	s := &Store{
		path:   path,
		file:   file,
		ids:    make(map[string]struct{}),
		logger: logger,
	}
	if err := s.loadIndex(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return s, nil
}

// loadIndex scans the existing log to rebuild the event-id set and the last
// assigned sequence. Corrupt lines are logged and skipped; they must not
// prevent reading the records around them.
func (s *Store) loadIndex() error {
	cursor, err := newCursor(s.path, 0)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindIOFailure, "scan event log", err)
	}
	defer cursor.Close()

	for {
		ev, err := cursor.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Is(err, event.ErrCorruptRecord) {
				s.logger.Warn("skipping corrupt event log record during index load",
					"path", s.path, "error", err)
				continue
			}
			return infra.WrapRepoErr(s.logger, infra.KindIOFailure, "scan event log", err)
		}
		s.ids[ev.EventID] = struct{}{}
		if ev.Sequence > s.lastSeq {
			s.lastSeq = ev.Sequence
		}
	}
}

// Append durably persists the event unless its event_id was seen before.
// It returns true when the event was accepted and false for a duplicate.
// On acceptance the store assigns the next sequence value and fsyncs the
// record before making it visible to the duplicate index.
func (s *Store) Append(ctx context.Context, ev *event.Event) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ids[ev.EventID]; dup {
		return false, nil
	}

	ev.Sequence = s.lastSeq + 1
	raw, err := json.Marshal(ev)
	if err != nil {
		return false, infra.WrapRepoErr(s.logger, infra.KindIOFailure, "encode event record", err)
	}
	if _, err := s.file.Write(append(raw, '\n')); err != nil {
		return false, infra.WrapRepoErr(s.logger, infra.KindIOFailure, "append event record", err)
	}
	if err := s.file.Sync(); err != nil {
		return false, infra.WrapRepoErr(s.logger, infra.KindIOFailure, "sync event log", err)
	}

	s.ids[ev.EventID] = struct{}{}
	s.lastSeq = ev.Sequence
	return true, nil
}

// Exists reports whether an event with the given id has been appended.
func (s *Store) Exists(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[eventID]
	return ok
}

// LastSequence returns the sequence of the most recently appended event.
func (s *Store) LastSequence() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeq
}

// ListSince opens a cursor over events with sequence greater than after, in
// ascending sequence order. Cursors are independent of the writer and of each
// other; re-reading from any sequence boundary is safe.
func (s *Store) ListSince(after int64) (*Cursor, error) {
	cursor, err := newCursor(s.path, after)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindIOFailure, "open event log cursor", err)
	}
	return cursor, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
