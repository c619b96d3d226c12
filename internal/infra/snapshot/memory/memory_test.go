//go:build unit

package memory_test

import (
	"context"
	"testing"
	"time"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/fault"
	"lockstream/internal/domain/locker"
	"lockstream/internal/domain/reservation"
	"lockstream/internal/infra/snapshot/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockerStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLockerStore()

	t.Run("absent id yields nil without error", func(t *testing.T) {
		got, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("stored values are isolated from the caller", func(t *testing.T) {
		l := locker.New("locker-1")
		l.CompartmentIDs = []string{"c1"}
		require.NoError(t, store.Put(ctx, l))

		// mutating the original must not leak into the store
		l.CompartmentIDs[0] = "tampered"
		l.Status = locker.StatusOffline

		got, err := store.Get(ctx, "locker-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"c1"}, got.CompartmentIDs)
		assert.Equal(t, locker.StatusActive, got.Status)

		// and mutating the read copy must not leak either
		got.CompartmentIDs[0] = "tampered"
		again, err := store.Get(ctx, "locker-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"c1"}, again.CompartmentIDs)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		got, err := store.Get(ctx, "locker-1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCompartmentStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCompartmentStore()

	put := func(lockerID, compartmentID string) {
		require.NoError(t, store.Put(ctx, &compartment.Compartment{
			LockerID:         lockerID,
			CompartmentID:    compartmentID,
			OperationalState: compartment.StateNormal,
		}))
	}
	put("l1", "c1")
	put("l1", "c2")
	put("l2", "c1")

	t.Run("keyed by locker and compartment", func(t *testing.T) {
		got, err := store.Get(ctx, "l2", "c1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "l2", got.LockerID)

		got, err = store.Get(ctx, "l2", "c2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list by locker", func(t *testing.T) {
		comps, err := store.ListByLocker(ctx, "l1")
		require.NoError(t, err)
		assert.Len(t, comps, 2)

		comps, err = store.ListByLocker(ctx, "l3")
		require.NoError(t, err)
		assert.Empty(t, comps)
	})
}

func TestReservationStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewReservationStore()

	put := func(id, lockerID string, status reservation.Status) {
		require.NoError(t, store.Put(ctx, &reservation.Reservation{
			ReservationID: id,
			LockerID:      lockerID,
			CompartmentID: "c1",
			Status:        status,
			CreatedAt:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}))
	}
	put("r1", "l1", reservation.StatusCreated)
	put("r2", "l1", reservation.StatusActive)
	put("r3", "l1", reservation.StatusCompleted)
	put("r4", "l2", reservation.StatusCancelled)

	t.Run("counts only non-terminal reservations", func(t *testing.T) {
		n, err := store.CountActiveByLocker(ctx, "l1")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = store.CountActiveByLocker(ctx, "l2")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("put overwrites by id", func(t *testing.T) {
		put("r1", "l1", reservation.StatusCancelled)
		n, err := store.CountActiveByLocker(ctx, "l1")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestFaultStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFaultStore()

	put := func(id string, status fault.Status) {
		require.NoError(t, store.Put(ctx, &fault.Fault{
			FaultID:       id,
			LockerID:      "l1",
			CompartmentID: "c1",
			Severity:      fault.SeverityMajor,
			Status:        status,
		}))
	}
	put("f1", fault.StatusOpen)
	put("f2", fault.StatusResolved)
	put("f3", fault.StatusOpen)

	t.Run("lists only open faults for the compartment", func(t *testing.T) {
		open, err := store.ListOpenByCompartment(ctx, "l1", "c1")
		require.NoError(t, err)
		require.Len(t, open, 2)
		for _, f := range open {
			assert.True(t, f.Open())
		}
	})

	t.Run("get by fault id", func(t *testing.T) {
		got, err := store.Get(ctx, "f2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, fault.StatusResolved, got.Status)
	})
}
