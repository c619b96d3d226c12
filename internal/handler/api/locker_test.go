//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"lockstream/internal/handler/api"
	"lockstream/internal/usecase/queries"
	apptest "lockstream/tests/common/httptest"
	queriesmock "lockstream/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LockerHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	queries *queriesmock.MockLockerQueries
	router  *gin.Engine
}

func (s *LockerHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.queries = queriesmock.NewMockLockerQueries(s.ctrl)

	handler := api.NewLockerHandler(s.queries)
	s.router = gin.New()
	s.router.GET("/lockers/:id", handler.GetLocker)
	s.router.GET("/lockers/:id/compartments/:cid", handler.GetCompartment)
}

func (s *LockerHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLockerHandlerSuite(t *testing.T) {
	suite.Run(t, new(LockerHandlerSuite))
}

func (s *LockerHandlerSuite) TestGetLocker_Success() {
	s.queries.EXPECT().
		GetSummary(gomock.Any(), "l1").
		Return(&queries.LockerSummaryView{
			LockerID:             "l1",
			Status:               "active",
			CompartmentIDs:       []string{"c1", "c2"},
			Compartments:         2,
			ActiveReservations:   1,
			DegradedCompartments: 0,
			StateHash:            "hash",
		}, nil)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lockers/l1", nil)

	var body struct {
		LockerID           string   `json:"lockerId"`
		Status             string   `json:"status"`
		CompartmentIDs     []string `json:"compartmentIds"`
		ActiveReservations int      `json:"activeReservations"`
		StateHash          string   `json:"stateHash"`
	}
	apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
	assert.Equal(s.T(), "l1", body.LockerID)
	assert.Equal(s.T(), []string{"c1", "c2"}, body.CompartmentIDs)
	assert.Equal(s.T(), 1, body.ActiveReservations)
	assert.Equal(s.T(), "hash", body.StateHash)
}

func (s *LockerHandlerSuite) TestGetLocker_NotFound() {
	s.queries.EXPECT().
		GetSummary(gomock.Any(), "missing").
		Return(nil, queries.ErrLockerNotFound)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lockers/missing", nil)

	apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
}

func (s *LockerHandlerSuite) TestGetCompartment_Success() {
	reservationID := "r1"
	s.queries.EXPECT().
		GetCompartment(gomock.Any(), "l1", "c1").
		Return(&queries.CompartmentStatusView{
			CompartmentID:        "c1",
			LockerID:             "l1",
			OperationalState:     "degraded",
			ActiveFaultIDs:       []string{"f1"},
			CurrentReservationID: &reservationID,
		}, nil)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lockers/l1/compartments/c1", nil)

	var body struct {
		CompartmentID        string   `json:"compartmentId"`
		OperationalState     string   `json:"operationalState"`
		ActiveFaultIDs       []string `json:"activeFaultIds"`
		CurrentReservationID *string  `json:"currentReservationId"`
	}
	apptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
	assert.Equal(s.T(), "degraded", body.OperationalState)
	assert.Equal(s.T(), []string{"f1"}, body.ActiveFaultIDs)
	if assert.NotNil(s.T(), body.CurrentReservationID) {
		assert.Equal(s.T(), "r1", *body.CurrentReservationID)
	}
}

func (s *LockerHandlerSuite) TestGetCompartment_NotFound() {
	s.queries.EXPECT().
		GetCompartment(gomock.Any(), "l1", "c9").
		Return(nil, queries.ErrCompartmentNotFound)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lockers/l1/compartments/c9", nil)

	apptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
}

func (s *LockerHandlerSuite) TestGetCompartment_StoreFailure() {
	s.queries.EXPECT().
		GetCompartment(gomock.Any(), "l1", "c1").
		Return(nil, assert.AnError)

	w := apptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lockers/l1/compartments/c1", nil)

	apptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal error")
}
