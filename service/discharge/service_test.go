package discharge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/event"
)

func TestNewRequiresBedPool(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestDischargesOccupiedBedsOverTime(t *testing.T) {
	beds := bed.New(5)
	for i := 0; i < 3; i++ {
		require.True(t, beds.TryAdmit())
	}

	events := event.New()
	defer events.Shutdown()
	occupancy := event.PublisherOf[bed.Capacity](events)

	service, err := New(beds,
		WithInterval(10*time.Millisecond),
		WithOccupancyPublisher(occupancy))
	require.NoError(t, err)
	require.NoError(t, service.Start(context.Background()))
	defer service.Shutdown()

	assert.Eventually(t, func() bool {
		return beds.Snapshot().Occupied == 0
	}, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	e, err := occupancy.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, event.TypeDischarged, e.Context.EventType)
	assert.Equal(t, 2, e.Data.Occupied, "first discharge reports 2/5")

	// Each release is followed by its occupancy record.
	e, err = occupancy.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, event.TypeBedStatus, e.Context.EventType)
	assert.Equal(t, 2, e.Data.Occupied)
}

func TestEmptyPoolEmitsNothing(t *testing.T) {
	beds := bed.New(2)
	events := event.New()
	defer events.Shutdown()
	occupancy := event.PublisherOf[bed.Capacity](events)

	service, err := New(beds,
		WithInterval(5*time.Millisecond),
		WithOccupancyPublisher(occupancy))
	require.NoError(t, err)
	require.NoError(t, service.Start(context.Background()))

	time.Sleep(50 * time.Millisecond)
	service.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = occupancy.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "no discharge events on an empty pool")
	assert.Equal(t, 0, beds.Snapshot().Occupied)
}
