package response

import "lockstream/internal/usecase/commands"

type IngestEventResponse struct {
	Created  bool  `json:"created"`
	Sequence int64 `json:"sequence"`
}

func FromIngestResult(r commands.IngestResult) *IngestEventResponse {
	return &IngestEventResponse{
		Created:  r.Accepted,
		Sequence: r.Sequence,
	}
}
