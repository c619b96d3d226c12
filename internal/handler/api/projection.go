package api

import (
	"net/http"

	resdto "lockstream/internal/handler/dto/response"
	"lockstream/internal/handler/httperr"
	"lockstream/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ProjectionHandler struct {
	projection commands.ProjectionCommands
}

func NewProjectionHandler(projection commands.ProjectionCommands) *ProjectionHandler {
	return &ProjectionHandler{projection: projection}
}

// Rebuild discards the snapshot and replays the whole event log. The request
// blocks until the replay finishes; reads issued meanwhile wait on the engine.
func (h *ProjectionHandler) Rebuild(c *gin.Context) {
	result, err := h.projection.RebuildProjection(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Rebuild failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRebuildResult(result))
}
