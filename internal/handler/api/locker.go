package api

import (
	"errors"
	"net/http"

	resdto "lockstream/internal/handler/dto/response"
	"lockstream/internal/handler/httperr"
	"lockstream/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LockerHandler struct {
	lockerQueries queries.LockerQueries
}

func NewLockerHandler(lockerQueries queries.LockerQueries) *LockerHandler {
	return &LockerHandler{lockerQueries: lockerQueries}
}

func (h *LockerHandler) GetLocker(c *gin.Context) {
	view, err := h.lockerQueries.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, queries.ErrLockerNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLockerSummaryView(view))
}

func (h *LockerHandler) GetCompartment(c *gin.Context) {
	view, err := h.lockerQueries.GetCompartment(c.Request.Context(), c.Param("id"), c.Param("cid"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLockerNotFound), errors.Is(err, queries.ErrCompartmentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromCompartmentStatusView(view))
}
