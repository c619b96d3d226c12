//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"lockstream/internal/handler/api"
	"lockstream/internal/usecase/queries"
	apptest "lockstream/tests/common/httptest"
	queriesmock "lockstream/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	queries *queriesmock.MockReservationQueries
	router  *gin.Engine
}

func (s *ReservationHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.queries = queriesmock.NewMockReservationQueries(s.ctrl)

	handler := api.NewReservationHandler(s.queries)
	s.router = gin.New()
	s.router.GET("/reservations/:id", handler.GetReservation)
}

func (s *ReservationHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerSuite))
}

func (s *ReservationHandlerSuite) TestGetReservation_Success() {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	completedAt := createdAt.Add(time.Hour)
	s.queries.EXPECT().
		GetStatus(gomock.Any(), "r1").
		Return(&queries.ReservationStatusView{
			ReservationID: "r1",
			LockerID:      "l1",
			CompartmentID: "c1",
			Status:        "completed",
			CreatedAt:     createdAt,
			CompletedAt:   &completedAt,
		}, nil)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/r1", nil)

	var body struct {
		ReservationID string     `json:"reservationId"`
		Status        string     `json:"status"`
		CompletedAt   *time.Time `json:"completedAt"`
	}
	apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
	assert.Equal(s.T(), "r1", body.ReservationID)
	assert.Equal(s.T(), "completed", body.Status)
	if assert.NotNil(s.T(), body.CompletedAt) {
		assert.True(s.T(), body.CompletedAt.Equal(completedAt))
	}
}

func (s *ReservationHandlerSuite) TestGetReservation_NotFound() {
	s.queries.EXPECT().
		GetStatus(gomock.Any(), "missing").
		Return(nil, queries.ErrReservationNotFound)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/missing", nil)

	apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
}

func (s *ReservationHandlerSuite) TestGetReservation_StoreFailure() {
	s.queries.EXPECT().
		GetStatus(gomock.Any(), "r1").
		Return(nil, assert.AnError)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/r1", nil)

	apptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal error")
}
