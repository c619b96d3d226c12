//go:build unit

package queries_test

import (
	"context"
	"testing"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/locker"
	"lockstream/internal/infra/snapshot/memory"
	"lockstream/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLockerQueries(t *testing.T) queries.LockerQueries {
	t.Helper()
	ctx := context.Background()
	lockers := memory.NewLockerStore()
	compartments := memory.NewCompartmentStore()

	l := locker.New("l1")
	l.CompartmentIDs = []string{"c1"}
	l.Compartments = 1
	l.ActiveReservations = 2
	l.DegradedCompartments = 1
	l.StateHash = "hash-1"
	require.NoError(t, lockers.Put(ctx, l))

	reservationID := "r1"
	require.NoError(t, compartments.Put(ctx, &compartment.Compartment{
		LockerID:             "l1",
		CompartmentID:        "c1",
		OperationalState:     compartment.StateDegraded,
		ActiveFaultIDs:       []string{"f1"},
		CurrentReservationID: &reservationID,
	}))
	require.NoError(t, compartments.Put(ctx, &compartment.Compartment{
		LockerID:         "l2",
		CompartmentID:    "c9",
		OperationalState: compartment.StateNormal,
	}))

	return queries.NewLockerQueries(lockers, compartments)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	q := seedLockerQueries(t)

	t.Run("success", func(t *testing.T) {
		view, err := q.GetSummary(ctx, "l1")
		require.NoError(t, err)
		assert.Equal(t, &queries.LockerSummaryView{
			LockerID:             "l1",
			Status:               "active",
			CompartmentIDs:       []string{"c1"},
			Compartments:         1,
			ActiveReservations:   2,
			DegradedCompartments: 1,
			StateHash:            "hash-1",
		}, view)
	})

	t.Run("unknown locker", func(t *testing.T) {
		_, err := q.GetSummary(ctx, "nope")
		assert.ErrorIs(t, err, queries.ErrLockerNotFound)
	})
}

func TestGetCompartment(t *testing.T) {
	ctx := context.Background()
	q := seedLockerQueries(t)

	t.Run("success", func(t *testing.T) {
		view, err := q.GetCompartment(ctx, "l1", "c1")
		require.NoError(t, err)
		assert.Equal(t, "c1", view.CompartmentID)
		assert.Equal(t, "degraded", view.OperationalState)
		assert.Equal(t, []string{"f1"}, view.ActiveFaultIDs)
		require.NotNil(t, view.CurrentReservationID)
		assert.Equal(t, "r1", *view.CurrentReservationID)
	})

	t.Run("unknown locker", func(t *testing.T) {
		_, err := q.GetCompartment(ctx, "nope", "c1")
		assert.ErrorIs(t, err, queries.ErrLockerNotFound)
	})

	t.Run("unknown compartment", func(t *testing.T) {
		_, err := q.GetCompartment(ctx, "l1", "c2")
		assert.ErrorIs(t, err, queries.ErrCompartmentNotFound)
	})

	t.Run("compartment under another locker is not reachable", func(t *testing.T) {
		_, err := q.GetCompartment(ctx, "l1", "c9")
		assert.ErrorIs(t, err, queries.ErrCompartmentNotFound)
	})
}
