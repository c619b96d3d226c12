package response

import "lockstream/internal/usecase/commands"

type RebuildResponse struct {
	ReplayedEvents int `json:"replayedEvents"`
	CorruptRecords int `json:"corruptRecords"`
	Anomalies      int `json:"anomalies"`
}

func FromRebuildResult(r *commands.RebuildResult) *RebuildResponse {
	return &RebuildResponse{
		ReplayedEvents: r.ReplayedEvents,
		CorruptRecords: r.CorruptRecords,
		Anomalies:      r.Anomalies,
	}
}
