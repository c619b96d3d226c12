//go:build unit

package locker_test

import (
	"testing"

	"lockstream/internal/domain/event"
	"lockstream/internal/domain/locker"
	"lockstream/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusChanged(status string) event.Event {
	return builder.NewEventBuilder().
		WithType(event.TypeLockerStatusChanged).
		WithPayload("status", status).
		BuildDomain()
}

func compartmentRegistered(id string) event.Event {
	return builder.NewEventBuilder().
		WithType(event.TypeCompartmentRegistered).
		WithPayload("compartment_id", id).
		BuildDomain()
}

func TestApply(t *testing.T) {
	t.Run("registration", func(t *testing.T) {
		tr := locker.Apply(nil, builder.NewEventBuilder().BuildDomain())
		require.True(t, tr.Changed)
		assert.Equal(t, "locker-1", tr.Next.LockerID)
		assert.Equal(t, locker.StatusActive, tr.Next.Status)
		assert.NotEmpty(t, tr.Next.StateHash)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		cur := locker.Apply(nil, builder.NewEventBuilder().BuildDomain()).Next
		tr := locker.Apply(cur, builder.NewEventBuilder().BuildDomain())
		assert.False(t, tr.Changed)
		require.Len(t, tr.Notices, 1)
		assert.Equal(t, event.NoticeConflict, tr.Notices[0].Code)
	})

	t.Run("status change", func(t *testing.T) {
		cur := locker.Apply(nil, builder.NewEventBuilder().BuildDomain()).Next
		tr := locker.Apply(cur, statusChanged("offline"))
		require.True(t, tr.Changed)
		assert.Equal(t, locker.StatusOffline, tr.Next.Status)
		assert.NotEqual(t, cur.StateHash, tr.Next.StateHash)

		// same status again is a silent no-op
		again := locker.Apply(tr.Next, statusChanged("offline"))
		assert.False(t, again.Changed)
		assert.Empty(t, again.Notices)
	})

	t.Run("unknown status value conflicts", func(t *testing.T) {
		cur := locker.Apply(nil, builder.NewEventBuilder().BuildDomain()).Next
		tr := locker.Apply(cur, statusChanged("sleeping"))
		assert.False(t, tr.Changed)
		require.Len(t, tr.Notices, 1)
		assert.Equal(t, event.NoticeConflict, tr.Notices[0].Code)
	})

	t.Run("status change for unregistered locker", func(t *testing.T) {
		tr := locker.Apply(nil, statusChanged("offline"))
		assert.False(t, tr.Changed)
		require.Len(t, tr.Notices, 1)
		assert.Equal(t, event.NoticeUnknownEntity, tr.Notices[0].Code)
	})

	t.Run("compartment registration keeps ids sorted", func(t *testing.T) {
		cur := locker.Apply(nil, builder.NewEventBuilder().BuildDomain()).Next
		cur = locker.Apply(cur, compartmentRegistered("c2")).Next
		cur = locker.Apply(cur, compartmentRegistered("c1")).Next
		assert.Equal(t, []string{"c1", "c2"}, cur.CompartmentIDs)
		assert.Equal(t, 2, cur.Compartments)
	})

	t.Run("compartment registration creates the locker implicitly", func(t *testing.T) {
		tr := locker.Apply(nil, compartmentRegistered("c1"))
		require.True(t, tr.Changed)
		assert.Equal(t, []string{"c1"}, tr.Next.CompartmentIDs)
		assert.Equal(t, locker.StatusActive, tr.Next.Status)
	})
}

func TestStateHash(t *testing.T) {
	t.Run("deterministic across instances", func(t *testing.T) {
		a := locker.New("locker-1")
		b := locker.New("locker-1")
		assert.Equal(t, a.StateHash, b.StateHash)
	})

	t.Run("changes with counters", func(t *testing.T) {
		l := locker.New("locker-1")
		before := l.StateHash
		l.SetCounts(1, 0)
		assert.NotEqual(t, before, l.StateHash)

		l.SetCounts(0, 0)
		assert.Equal(t, before, l.StateHash)
	})

	t.Run("differs per locker", func(t *testing.T) {
		assert.NotEqual(t, locker.New("a").StateHash, locker.New("b").StateHash)
	})
}
