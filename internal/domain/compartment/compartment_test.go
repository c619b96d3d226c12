//go:build unit

package compartment_test

import (
	"testing"

	"lockstream/internal/domain/compartment"
	"lockstream/internal/domain/event"
	"lockstream/internal/domain/fault"
	"lockstream/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registered(compartmentID string) event.Event {
	return builder.NewEventBuilder().
		WithType(event.TypeCompartmentRegistered).
		WithPayload("compartment_id", compartmentID).
		BuildDomain()
}

func openFault(id string, severity fault.Severity) *fault.Fault {
	return &fault.Fault{FaultID: id, LockerID: "locker-1", CompartmentID: "c1", Severity: severity, Status: fault.StatusOpen}
}

func TestDeriveState(t *testing.T) {
	threshold := fault.DefaultOutOfServiceThreshold

	cases := []struct {
		name  string
		open  []*fault.Fault
		want  compartment.OperationalState
	}{
		{"no faults", nil, compartment.StateNormal},
		{"minor fault", []*fault.Fault{openFault("f1", fault.SeverityMinor)}, compartment.StateDegraded},
		{"major fault", []*fault.Fault{openFault("f1", fault.SeverityMajor)}, compartment.StateDegraded},
		{"critical fault", []*fault.Fault{openFault("f1", fault.SeverityCritical)}, compartment.StateOutOfService},
		{"max of open severities wins", []*fault.Fault{
			openFault("f1", fault.SeverityMinor),
			openFault("f2", fault.SeverityCritical),
		}, compartment.StateOutOfService},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, compartment.DeriveState(tc.open, threshold))
		})
	}

	t.Run("lower threshold takes major out of service", func(t *testing.T) {
		got := compartment.DeriveState([]*fault.Fault{openFault("f1", fault.SeverityMajor)}, fault.SeverityMajor)
		assert.Equal(t, compartment.StateOutOfService, got)
	})
}

func TestApply(t *testing.T) {
	t.Run("registration creates a normal compartment", func(t *testing.T) {
		tr := compartment.Apply(nil, registered("c1"), compartment.Context{})
		require.True(t, tr.Changed)
		assert.Equal(t, "c1", tr.Next.CompartmentID)
		assert.Equal(t, compartment.StateNormal, tr.Next.OperationalState)
		assert.False(t, tr.Next.Occupied())
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		cur := compartment.Apply(nil, registered("c1"), compartment.Context{}).Next
		tr := compartment.Apply(cur, registered("c1"), compartment.Context{})
		assert.False(t, tr.Changed)
		require.Len(t, tr.Notices, 1)
		assert.Equal(t, event.NoticeConflict, tr.Notices[0].Code)
	})

	t.Run("registration without compartment_id conflicts with no entity", func(t *testing.T) {
		ev := builder.NewEventBuilder().
			WithType(event.TypeCompartmentRegistered).
			BuildDomain()
		tr := compartment.Apply(nil, ev, compartment.Context{})
		assert.False(t, tr.Changed)
		require.Len(t, tr.Notices, 1)
		assert.Equal(t, event.NoticeConflict, tr.Notices[0].Code)
		// no compartment exists to name
		assert.Empty(t, tr.Notices[0].ID)
		assert.Equal(t, ev.EventID, tr.Notices[0].EventID)
	})

	t.Run("accepted reservation occupies the compartment", func(t *testing.T) {
		cur := compartment.Apply(nil, registered("c1"), compartment.Context{}).Next
		ev := builder.NewEventBuilder().
			WithType(event.TypeReservationCreated).
			WithPayload("reservation_id", "r1").
			WithPayload("compartment_id", "c1").
			BuildDomain()

		tr := compartment.Apply(cur, ev, compartment.Context{ReservationAccepted: true})
		require.True(t, tr.Changed)
		require.NotNil(t, tr.Next.CurrentReservationID)
		assert.Equal(t, "r1", *tr.Next.CurrentReservationID)

		// rejected by the reservation machine: slot stays free
		tr = compartment.Apply(cur, ev, compartment.Context{ReservationAccepted: false})
		assert.False(t, tr.Changed)
		assert.False(t, cur.Occupied())
	})

	t.Run("closing reservation releases only the matching slot", func(t *testing.T) {
		cur := compartment.Apply(nil, registered("c1"), compartment.Context{}).Next
		created := builder.NewEventBuilder().
			WithType(event.TypeReservationCreated).
			WithPayload("reservation_id", "r1").
			WithPayload("compartment_id", "c1").
			BuildDomain()
		cur = compartment.Apply(cur, created, compartment.Context{ReservationAccepted: true}).Next

		pickup := builder.NewEventBuilder().
			WithType(event.TypeParcelPickedUp).
			WithPayload("reservation_id", "r1").
			BuildDomain()

		// closing some other reservation must not release the slot
		tr := compartment.Apply(cur, pickup, compartment.Context{ReservationID: "r2"})
		assert.False(t, tr.Changed)
		assert.True(t, cur.Occupied())

		tr = compartment.Apply(cur, pickup, compartment.Context{ReservationID: "r1"})
		require.True(t, tr.Changed)
		assert.False(t, tr.Next.Occupied())
	})

	t.Run("fault changes recompute derived state and fault ids", func(t *testing.T) {
		cur := compartment.Apply(nil, registered("c1"), compartment.Context{}).Next
		faultEv := builder.NewEventBuilder().
			WithType(event.TypeFaultReported).
			WithPayload("compartment_id", "c1").
			WithPayload("severity", float64(3)).
			BuildDomain()

		ctx := compartment.Context{
			OpenFaults: []*fault.Fault{openFault("f2", fault.SeverityCritical), openFault("f1", fault.SeverityMinor)},
			Threshold:  fault.DefaultOutOfServiceThreshold,
		}
		tr := compartment.Apply(cur, faultEv, ctx)
		require.True(t, tr.Changed)
		assert.Equal(t, compartment.StateOutOfService, tr.Next.OperationalState)
		assert.Equal(t, []string{"f1", "f2"}, tr.Next.ActiveFaultIDs)

		// identical recomputation is reported as unchanged
		again := compartment.Apply(tr.Next, faultEv, ctx)
		assert.False(t, again.Changed)

		// clearing all faults restores normal
		cleared := compartment.Apply(tr.Next, faultEv, compartment.Context{Threshold: fault.DefaultOutOfServiceThreshold})
		require.True(t, cleared.Changed)
		assert.Equal(t, compartment.StateNormal, cleared.Next.OperationalState)
		assert.Empty(t, cleared.Next.ActiveFaultIDs)
	})

	t.Run("unknown event type is a guaranteed no-op", func(t *testing.T) {
		cur := compartment.Apply(nil, registered("c1"), compartment.Context{}).Next
		tr := compartment.Apply(cur, builder.NewEventBuilder().WithType("SomethingNew").BuildDomain(), compartment.Context{})
		assert.False(t, tr.Changed)
		assert.Same(t, cur, tr.Next)
		assert.Empty(t, tr.Notices)
	})
}
