//go:build unit || e2e

package builder

import (
	"time"

	"lockstream/internal/domain/event"
	reqdto "lockstream/internal/handler/dto/request"
	"lockstream/internal/usecase/commands"

	"github.com/google/uuid"
)

type EventBuilder struct {
	EventID    string
	Type       event.Type
	LockerID   string
	OccurredAt time.Time
	Sequence   int64
	Payload    map[string]any
}

func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		EventID:    uuid.NewString(),
		Type:       event.TypeLockerRegistered,
		LockerID:   "locker-1",
		OccurredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Payload:    map[string]any{},
	}
}

func (b *EventBuilder) WithEventID(id string) *EventBuilder {
	b.EventID = id
	return b
}

func (b *EventBuilder) WithType(t event.Type) *EventBuilder {
	b.Type = t
	return b
}

func (b *EventBuilder) WithLockerID(id string) *EventBuilder {
	b.LockerID = id
	return b
}

func (b *EventBuilder) WithOccurredAt(t time.Time) *EventBuilder {
	b.OccurredAt = t
	return b
}

func (b *EventBuilder) WithSequence(seq int64) *EventBuilder {
	b.Sequence = seq
	return b
}

func (b *EventBuilder) WithPayload(key string, value any) *EventBuilder {
	b.Payload[key] = value
	return b
}

// Build methods

func (b *EventBuilder) BuildDomain() event.Event {
	return event.Event{
		EventID:    b.EventID,
		Type:       b.Type,
		LockerID:   b.LockerID,
		OccurredAt: b.OccurredAt,
		Sequence:   b.Sequence,
		Payload:    b.Payload,
	}
}

func (b *EventBuilder) BuildIngestInput() commands.IngestEventInput {
	return commands.IngestEventInput{
		EventID:    b.EventID,
		Type:       string(b.Type),
		LockerID:   b.LockerID,
		OccurredAt: b.OccurredAt,
		Payload:    b.Payload,
	}
}

func (b *EventBuilder) BuildRequestDTO() reqdto.IngestEventRequest {
	return reqdto.IngestEventRequest{
		EventID:    b.EventID,
		Type:       string(b.Type),
		LockerID:   b.LockerID,
		OccurredAt: b.OccurredAt,
		Payload:    b.Payload,
	}
}
