package api

import (
	"errors"
	"net/http"

	reqdto "lockstream/internal/handler/dto/request"
	resdto "lockstream/internal/handler/dto/response"
	"lockstream/internal/handler/httperr"
	"lockstream/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	ingest commands.IngestCommands
}

func NewEventHandler(ingest commands.IngestCommands) *EventHandler {
	return &EventHandler{ingest: ingest}
}

// IngestEvent accepts one device event. A new event_id is answered with 202,
// a replayed one with 200 so at-least-once producers can tell the two apart.
func (h *EventHandler) IngestEvent(c *gin.Context) {
	var req reqdto.IngestEventRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.ingest.IngestEvent(c.Request.Context(), commands.IngestEventInput{
		EventID:    req.EventID,
		Type:       req.Type,
		LockerID:   req.LockerID,
		OccurredAt: req.OccurredAt,
		Payload:    req.Payload,
	})
	if err != nil {
		if errors.Is(err, commands.ErrEventValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Event validation failed", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	status := http.StatusAccepted
	if !result.Accepted {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromIngestResult(*result))
}
