package triage

import (
	"sync"

	"github.com/wardflow/wardflow/model/patient"
)

// DefaultMaxPending is the default bound on queued patients.
const DefaultMaxPending = 100

// Queue is a bounded, priority-ordered admission queue. Ordering is priority
// class descending, arrival ascending, insertion sequence ascending. All
// operations are linearizable under a single mutex; none of them block.
type Queue struct {
	mu         sync.Mutex
	pending    []*patient.Patient
	maxPending int
	signal     chan struct{}
}

// New creates a queue bounded at maxPending entries; values < 1 fall back to
// DefaultMaxPending.
func New(maxPending int) *Queue {
	if maxPending < 1 {
		maxPending = DefaultMaxPending
	}
	return &Queue{
		pending:    make([]*patient.Patient, 0, maxPending),
		maxPending: maxPending,
		signal:     make(chan struct{}, 1),
	}
}

// Push inserts the patient preserving queue order. A full queue drops the
// insertion and returns false - deliberate overload shedding, not an error.
func (q *Queue) Push(p *patient.Patient) bool {
	q.mu.Lock()
	if len(q.pending) >= q.maxPending {
		q.mu.Unlock()
		return false
	}
	i := len(q.pending)
	q.pending = append(q.pending, p)
	for i > 0 && q.pending[i].Before(q.pending[i-1]) {
		q.pending[i], q.pending[i-1] = q.pending[i-1], q.pending[i]
		i--
	}
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Pop removes and returns the highest-priority, earliest-arrived patient, or
// (nil, false) when the queue is empty.
func (q *Queue) Pop() (*patient.Patient, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, false
	}
	head := q.pending[0]
	copy(q.pending, q.pending[1:])
	q.pending[len(q.pending)-1] = nil
	q.pending = q.pending[:len(q.pending)-1]
	return head, true
}

// Size returns the number of queued patients.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// IsEmpty reports whether the queue holds no patients.
func (q *Queue) IsEmpty() bool {
	return q.Size() == 0
}

// Signal returns a channel that receives a token after a successful Push,
// letting consumers block on queue non-emptiness instead of polling. The
// channel is 1-buffered; a token may represent any number of pushes, so
// consumers must drain with Pop until empty.
func (q *Queue) Signal() <-chan struct{} {
	return q.signal
}
