package event

import (
	"context"
	"time"

	"github.com/wardflow/wardflow/service/messaging"
)

// Publisher publishes typed events onto a queue.
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

// NewPublisher creates a publisher backed by the supplied queue.
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish stamps and enqueues the event without blocking. Notification is
// fire-and-forget: a saturated queue drops the event and reports
// messaging.ErrQueueFull, it never stalls the emitting operation.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	event.CreatedAt = time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.queue.TryPublish(event)
}

// Consume retrieves and acknowledges the next event.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
