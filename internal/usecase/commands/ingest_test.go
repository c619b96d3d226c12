//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"lockstream/internal/domain/event"
	"lockstream/internal/pkg/clock"
	"lockstream/internal/usecase/commands"
	"lockstream/tests/common/builder"
	commandsmock "lockstream/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errBoom = assert.AnError

func newIngest(t *testing.T) (commands.IngestCommands, *commandsmock.MockEventStore, *commandsmock.MockProjector, *clock.MockClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := commandsmock.NewMockEventStore(ctrl)
	projector := commandsmock.NewMockProjector(ctrl)
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return commands.NewIngestCommands(store, projector, clk), store, projector, clk
}

func TestIngestEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("appends then projects and returns the assigned sequence", func(t *testing.T) {
		uc, store, projector, _ := newIngest(t)
		in := builder.NewEventBuilder().BuildIngestInput()

		store.EXPECT().Append(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, ev *event.Event) (bool, error) {
				assert.Equal(t, in.EventID, ev.EventID)
				ev.Sequence = 7
				return true, nil
			})
		projector.EXPECT().Apply(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, ev event.Event) error {
				assert.Equal(t, int64(7), ev.Sequence)
				return nil
			})

		result, err := uc.IngestEvent(ctx, in)
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, int64(7), result.Sequence)
	})

	t.Run("duplicate short-circuits before the projection", func(t *testing.T) {
		uc, store, _, _ := newIngest(t)

		store.EXPECT().Append(ctx, gomock.Any()).Return(false, nil)
		// no Apply expectation: a duplicate must never reach the projector

		result, err := uc.IngestEvent(ctx, builder.NewEventBuilder().BuildIngestInput())
		require.NoError(t, err)
		assert.False(t, result.Accepted)
		assert.Zero(t, result.Sequence)
	})

	t.Run("validation failure is marked and nothing is stored", func(t *testing.T) {
		uc, _, _, _ := newIngest(t)
		in := builder.NewEventBuilder().WithEventID("").BuildIngestInput()

		result, err := uc.IngestEvent(ctx, in)
		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrEventValidation)
		assert.Nil(t, result)
	})

	t.Run("missing occurred_at defaults to ingestion time in UTC", func(t *testing.T) {
		uc, store, projector, clk := newIngest(t)
		in := builder.NewEventBuilder().WithOccurredAt(time.Time{}).BuildIngestInput()

		store.EXPECT().Append(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, ev *event.Event) (bool, error) {
				assert.Equal(t, clk.Now(), ev.OccurredAt)
				return true, nil
			})
		projector.EXPECT().Apply(ctx, gomock.Any()).Return(nil)

		_, err := uc.IngestEvent(ctx, in)
		require.NoError(t, err)
	})

	t.Run("supplied occurred_at is normalized to UTC", func(t *testing.T) {
		uc, store, projector, _ := newIngest(t)
		est := time.FixedZone("EST", -5*60*60)
		local := time.Date(2025, 6, 1, 7, 0, 0, 0, est)
		in := builder.NewEventBuilder().WithOccurredAt(local).BuildIngestInput()

		store.EXPECT().Append(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, ev *event.Event) (bool, error) {
				assert.Equal(t, time.UTC, ev.OccurredAt.Location())
				assert.True(t, ev.OccurredAt.Equal(local))
				return true, nil
			})
		projector.EXPECT().Apply(ctx, gomock.Any()).Return(nil)

		_, err := uc.IngestEvent(ctx, in)
		require.NoError(t, err)
	})

	t.Run("storage failure is marked", func(t *testing.T) {
		uc, store, _, _ := newIngest(t)

		store.EXPECT().Append(ctx, gomock.Any()).Return(false, errBoom)

		_, err := uc.IngestEvent(ctx, builder.NewEventBuilder().BuildIngestInput())
		assert.ErrorIs(t, err, commands.ErrEventStorage)
	})

	t.Run("projection failure is marked", func(t *testing.T) {
		uc, store, projector, _ := newIngest(t)

		store.EXPECT().Append(ctx, gomock.Any()).Return(true, nil)
		projector.EXPECT().Apply(ctx, gomock.Any()).Return(errBoom)

		_, err := uc.IngestEvent(ctx, builder.NewEventBuilder().BuildIngestInput())
		assert.ErrorIs(t, err, commands.ErrProjection)
	})

	t.Run("unknown event types pass validation", func(t *testing.T) {
		uc, store, projector, _ := newIngest(t)
		in := builder.NewEventBuilder().WithType("SolarFlareDetected").BuildIngestInput()

		store.EXPECT().Append(ctx, gomock.Any()).Return(true, nil)
		projector.EXPECT().Apply(ctx, gomock.Any()).Return(nil)

		result, err := uc.IngestEvent(ctx, in)
		require.NoError(t, err)
		assert.True(t, result.Accepted)
	})
}
