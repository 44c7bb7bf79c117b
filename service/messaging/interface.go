package messaging

import (
	"context"
	"errors"
)

// ErrQueueFull reports a non-blocking publish rejected by a saturated queue.
var ErrQueueFull = errors.New("queue full")

// Queue represents an abstract message queue for any payload type.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue, blocking until
	// the queue accepts it or ctx is done
	Publish(ctx context.Context, t *T) error

	// TryPublish adds a new message without blocking; a saturated queue
	// rejects it with ErrQueueFull
	TryPublish(t *T) error

	// Consume retrieves a single message from the queue
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
