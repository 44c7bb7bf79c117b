package admission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/event"
	"github.com/wardflow/wardflow/service/messaging/memory"
	"github.com/wardflow/wardflow/service/triage"
)

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(nil, bed.New(1))
	assert.Error(t, err)
	_, err = New(triage.New(1), nil)
	assert.Error(t, err)
}

func TestAdmitsEmergencyBeforeEarlierRegular(t *testing.T) {
	queue := triage.New(10)
	beds := bed.New(1)
	events := event.New()
	defer events.Shutdown()
	patients := event.PublisherOf[patient.Snapshot](events)

	service, err := New(queue, beds,
		WithTickInterval(10*time.Millisecond),
		WithPatientPublisher(patients))
	require.NoError(t, err)

	// Alice arrives first but Bob is an emergency.
	alice := patient.New("Alice", patient.Regular, 5)
	bob := patient.New("Bob", patient.Emergency, 9)
	require.True(t, queue.Push(alice))
	require.True(t, queue.Push(bob))

	ctx := context.Background()
	require.NoError(t, service.Start(ctx))
	defer service.Shutdown()

	consumeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	first, err := patients.Consume(consumeCtx)
	require.NoError(t, err)
	assert.Equal(t, event.TypeAdmitted, first.Context.EventType)
	assert.Equal(t, "Bob", first.Data.Name, "emergency admitted despite later arrival")

	// One bed only: Alice stays queued until a discharge frees it.
	assert.Equal(t, 1, beds.Snapshot().Occupied)
	assert.Equal(t, 1, queue.Size())

	beds.Discharge()
	second, err := patients.Consume(consumeCtx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", second.Data.Name)
}

func TestDrainStopsWhenBedsExhausted(t *testing.T) {
	queue := triage.New(10)
	beds := bed.New(2)
	service, err := New(queue, beds, WithTickInterval(10*time.Millisecond))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.True(t, queue.Push(patient.New("p", patient.Regular, 3)))
	}

	require.NoError(t, service.Start(context.Background()))
	defer service.Shutdown()

	assert.Eventually(t, func() bool {
		return beds.Snapshot().Occupied == 2 && queue.Size() == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestReservedSlotReturnedWhenQueueEmpty(t *testing.T) {
	queue := triage.New(10)
	beds := bed.New(3)
	service, err := New(queue, beds)
	require.NoError(t, err)

	// drain on an empty queue must not leak the reservation.
	service.drain(context.Background())
	assert.Equal(t, 0, beds.Snapshot().Occupied)
}

func TestDrainUnaffectedBySaturatedEventQueue(t *testing.T) {
	events := event.New(event.WithQueueConfig(func(string) memory.Config {
		config := memory.DefaultConfig()
		config.QueueBuffer = 1
		return config
	}))
	defer events.Shutdown()

	queue := triage.New(10)
	beds := bed.New(5)
	service, err := New(queue, beds,
		WithPatientPublisher(event.PublisherOf[patient.Snapshot](events)),
		WithOccupancyPublisher(event.PublisherOf[bed.Capacity](events)))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.True(t, queue.Push(patient.New("p", patient.Regular, 3)))
	}

	// Nothing consumes the event queues: admissions beyond the first must
	// still complete promptly, dropping their notifications.
	started := time.Now()
	service.drain(context.Background())
	assert.Less(t, time.Since(started), time.Second)
	assert.Equal(t, 5, beds.Snapshot().Occupied)
	assert.Equal(t, 0, queue.Size())
}

func TestShutdownJoinsWorker(t *testing.T) {
	queue := triage.New(10)
	beds := bed.New(1)
	service, err := New(queue, beds, WithTickInterval(5*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, service.Start(context.Background()))

	done := make(chan struct{})
	go func() {
		service.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not join the worker")
	}
}
