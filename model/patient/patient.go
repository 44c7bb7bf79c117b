package patient

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/wardflow/wardflow/internal/clock"
	"github.com/wardflow/wardflow/internal/idgen"
)

// Priority is an ordered admission priority class; higher values admit first.
type Priority int

const (
	// Regular is the default priority class.
	Regular Priority = iota

	// Emergency outranks Regular regardless of arrival order.
	Emergency
)

// String returns a human readable priority name.
func (p Priority) String() string {
	switch p {
	case Emergency:
		return "EMERGENCY"
	default:
		return "REGULAR"
	}
}

// Ward classifies a patient for the ward-allocation workflow. It is
// independent of Priority; the two classifications drive disjoint subsystems.
type Ward int

const (
	// GeneralWard is the default ward class.
	GeneralWard Ward = iota

	// CriticalCare denotes the independently capacitated critical-care pool.
	CriticalCare
)

// String returns a human readable ward name.
func (w Ward) String() string {
	switch w {
	case CriticalCare:
		return "CRITICAL_CARE"
	default:
		return "GENERAL_WARD"
	}
}

// ClassifyBySeverity maps a severity score onto a ward class. Scores above 6
// route to critical care.
func ClassifyBySeverity(severity int) Ward {
	if severity > 6 {
		return CriticalCare
	}
	return GeneralWard
}

var sequence uint64

// Patient is a single admission record. It is created by the intake boundary
// and owned exclusively by whichever structure currently holds it - the triage
// queue or an in-flight allocation task - never both.
type Patient struct {
	ID        int64
	Name      string
	Priority  Priority
	Ward      Ward
	Severity  int
	ArrivalAt time.Time

	// Sequence is a process-wide monotonic insertion counter used as the final
	// ordering tiebreak when arrival timestamps collide.
	Sequence uint64
}

// New creates a patient record, assigning identifier, arrival time and
// insertion sequence.
func New(name string, priority Priority, severity int) *Patient {
	return &Patient{
		ID:        idgen.Next(),
		Name:      name,
		Priority:  priority,
		Ward:      ClassifyBySeverity(severity),
		Severity:  severity,
		ArrivalAt: clock.Now(),
		Sequence:  atomic.AddUint64(&sequence, 1),
	}
}

// Before reports whether p should be admitted ahead of other: higher priority
// first, then earlier arrival, then lower sequence.
func (p *Patient) Before(other *Patient) bool {
	if p.Priority != other.Priority {
		return p.Priority > other.Priority
	}
	if !p.ArrivalAt.Equal(other.ArrivalAt) {
		return p.ArrivalAt.Before(other.ArrivalAt)
	}
	return p.Sequence < other.Sequence
}

// Snapshot is an immutable copy of the admission facts, safe to hand to event
// listeners and reporters after ownership of the record has moved on.
type Snapshot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Priority  string    `json:"priority"`
	Ward      string    `json:"ward"`
	Severity  int       `json:"severity"`
	ArrivalAt time.Time `json:"arrivalAt"`
}

// Snapshot returns an immutable copy of the patient's admission facts.
func (p *Patient) Snapshot() Snapshot {
	return Snapshot{
		ID:        p.ID,
		Name:      p.Name,
		Priority:  p.Priority.String(),
		Ward:      p.Ward.String(),
		Severity:  p.Severity,
		ArrivalAt: p.ArrivalAt,
	}
}

// String implements fmt.Stringer.
func (p *Patient) String() string {
	return fmt.Sprintf("patient %d %q (%s, severity %d)", p.ID, p.Name, p.Priority, p.Severity)
}
