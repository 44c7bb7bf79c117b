package bed

import (
	"fmt"
	"sync"
)

// DefaultCapacity is the default number of shared beds.
const DefaultCapacity = 5

// Capacity is a point-in-time occupancy reading, published with every
// occupancy change and consumed by reporters and the journal.
type Capacity struct {
	Occupied int `json:"occupied"`
	Total    int `json:"total"`
}

// Pool bounds the number of simultaneously admitted patients. The occupancy
// counter is guarded by its own mutex; both mutations are short critical
// sections and never block.
type Pool struct {
	mu       sync.Mutex
	occupied int
	capacity int
}

// New creates a bed pool; capacity values < 1 fall back to DefaultCapacity.
func New(capacity int) *Pool {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Pool{capacity: capacity}
}

// TryAdmit atomically reserves one bed when occupancy permits. Two concurrent
// callers never both succeed on the last free bed.
func (p *Pool) TryAdmit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.occupied >= p.capacity {
		return false
	}
	p.occupied++
	p.check()
	return true
}

// Discharge atomically frees one bed. Discharging an empty pool is a no-op
// returning false; occupancy never underflows.
func (p *Pool) Discharge() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.occupied == 0 {
		return false
	}
	p.occupied--
	p.check()
	return true
}

// Snapshot returns a point-in-time occupancy reading. It may be briefly stale
// relative to concurrent mutators but is never negative or over capacity.
func (p *Pool) Snapshot() Capacity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Capacity{Occupied: p.occupied, Total: p.capacity}
}

// check asserts the occupancy invariant. A violation is a programming error,
// never silently corrected.
func (p *Pool) check() {
	if p.occupied < 0 || p.occupied > p.capacity {
		panic(fmt.Sprintf("bed: occupancy invariant violated: %d/%d", p.occupied, p.capacity))
	}
}
