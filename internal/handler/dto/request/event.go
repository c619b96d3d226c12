package request

import (
	"time"
)

type IngestEventRequest struct {
	EventID    string         `json:"event_id" binding:"required"`
	Type       string         `json:"type" binding:"required"`
	LockerID   string         `json:"locker_id" binding:"required"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}
