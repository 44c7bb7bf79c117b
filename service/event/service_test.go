package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/messaging"
	"github.com/wardflow/wardflow/service/messaging/memory"
)

func TestPublisherRoundTrip(t *testing.T) {
	service := New()
	publisher := PublisherOf[patient.Snapshot](service)

	snap := patient.Snapshot{ID: 1, Name: "Alice", Priority: "REGULAR"}
	err := publisher.Publish(context.Background(), NewEvent(&Context{
		PatientID: snap.ID,
		EventType: TypeCheckIn,
		Service:   "triage",
	}, snap))
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := publisher.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, TypeCheckIn, got.Context.EventType)
	assert.Equal(t, "Alice", got.Data.Name)
}

func TestListenerReceivesEvents(t *testing.T) {
	service := New()
	defer service.Shutdown()

	var mu sync.Mutex
	var seen []string
	SetListenerOf(service, func(e *Event[patient.Snapshot]) {
		mu.Lock()
		seen = append(seen, e.Context.EventType)
		mu.Unlock()
	})

	publisher := PublisherOf[patient.Snapshot](service)
	for _, eventType := range []string{TypeCheckIn, TypeAdmitted, TypeDischarged} {
		err := publisher.Publish(context.Background(), NewEvent(&Context{EventType: eventType, Service: "test"}, patient.Snapshot{}))
		assert.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{TypeCheckIn, TypeAdmitted, TypeDischarged}, seen)
}

func TestPublishDropsWhenSaturated(t *testing.T) {
	service := New(WithQueueConfig(func(string) memory.Config {
		config := memory.DefaultConfig()
		config.QueueBuffer = 1
		return config
	}))
	publisher := PublisherOf[patient.Snapshot](service)

	ctx := context.Background()
	assert.NoError(t, publisher.Publish(ctx, NewEvent(&Context{EventType: TypeCheckIn}, patient.Snapshot{})))

	// No listener drains the queue: further publishes return immediately
	// with a drop instead of blocking the emitter.
	started := time.Now()
	err := publisher.Publish(ctx, NewEvent(&Context{EventType: TypeCheckIn}, patient.Snapshot{}))
	assert.ErrorIs(t, err, messaging.ErrQueueFull)
	assert.Less(t, time.Since(started), time.Second)
}

func TestPublisherOfReturnsSharedInstance(t *testing.T) {
	service := New()
	first := PublisherOf[patient.Snapshot](service)
	second := PublisherOf[patient.Snapshot](service)
	assert.Same(t, first, second)
}
