package capacity

import (
	"context"
)

// Pool is a counting semaphore bounding concurrent holders of a ward's beds.
// It is implemented over a buffered channel: acquisition order follows the
// runtime's channel wake order, which is FIFO enough to rule out indefinite
// starvation under normal load.
type Pool struct {
	name  string
	slots chan struct{}
}

// New creates a pool with the given capacity; the name is informational and
// appears in events and logs.
func New(name string, capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		name:  name,
		slots: make(chan struct{}, capacity),
	}
}

// Name returns the pool name.
func (p *Pool) Name() string { return p.name }

// Acquire blocks until a slot is free, then claims it. Cancellation of ctx
// aborts the wait and returns ctx.Err() without consuming a slot.
func (p *Pool) Acquire(ctx context.Context) error {
	select {
	case p.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire claims a slot without blocking; it returns false when the pool
// is exhausted.
func (p *Pool) TryAcquire() bool {
	select {
	case p.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees a previously acquired slot, waking one blocked waiter if any.
// Releasing more than was acquired is a programming error.
func (p *Pool) Release() {
	select {
	case <-p.slots:
	default:
		panic("capacity: release without matching acquire: " + p.name)
	}
}

// Available returns the number of free slots; the value may be stale relative
// to concurrent acquirers.
func (p *Pool) Available() int {
	return cap(p.slots) - len(p.slots)
}

// Capacity returns the pool's bound.
func (p *Pool) Capacity() int {
	return cap(p.slots)
}
