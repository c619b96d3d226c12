package api

import (
	"errors"
	"net/http"

	resdto "lockstream/internal/handler/dto/response"
	"lockstream/internal/handler/httperr"
	"lockstream/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationQueries queries.ReservationQueries
}

func NewReservationHandler(reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{reservationQueries: reservationQueries}
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	view, err := h.reservationQueries.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationStatusView(view))
}
