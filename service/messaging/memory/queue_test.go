package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wardflow/wardflow/service/messaging"
)

type admissionNote struct {
	PatientID int64
	Event     string
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[admissionNote](config)

	ctx := context.Background()
	note := admissionNote{PatientID: 7, Event: "Admitted"}

	err := queue.Publish(ctx, &note)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())

	payload := message.T()
	assert.Equal(t, note.PatientID, payload.PatientID)
	assert.Equal(t, note.Event, payload.Event)

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack(), "double ack should error")
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[admissionNote](config)

	ctx := context.Background()
	note := admissionNote{PatientID: 9, Event: "Discharged"}
	assert.NoError(t, queue.Publish(ctx, &note))

	// First delivery fails, message is requeued once.
	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Nack(assert.AnError))

	ctxWait, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	message, err = queue.Consume(ctxWait)
	assert.NoError(t, err)

	// Second failure exceeds the retry limit and parks the message on the DLQ.
	assert.NoError(t, message.Nack(assert.AnError))
	assert.Eventually(t, func() bool { return queue.DLQSize() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, queue.Size())
}

func TestTryPublishRejectsWhenFull(t *testing.T) {
	config := DefaultConfig()
	config.QueueBuffer = 2
	queue := NewQueue[admissionNote](config)

	assert.NoError(t, queue.TryPublish(&admissionNote{PatientID: 1}))
	assert.NoError(t, queue.TryPublish(&admissionNote{PatientID: 2}))

	// The buffer is full and nothing consumes: the publish must return
	// immediately instead of waiting for room.
	err := queue.TryPublish(&admissionNote{PatientID: 3})
	assert.ErrorIs(t, err, messaging.ErrQueueFull)
	assert.Equal(t, 2, queue.Size())
}

func TestQueueConsumeHonoursContext(t *testing.T) {
	queue := NewQueue[admissionNote](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
