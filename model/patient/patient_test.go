package patient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wardflow/wardflow/internal/clock"
)

func TestClassifyBySeverity(t *testing.T) {
	assert.Equal(t, GeneralWard, ClassifyBySeverity(1))
	assert.Equal(t, GeneralWard, ClassifyBySeverity(6))
	assert.Equal(t, CriticalCare, ClassifyBySeverity(7))
	assert.Equal(t, CriticalCare, ClassifyBySeverity(10))
}

func TestBefore(t *testing.T) {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	emergency := &Patient{ID: 2, Priority: Emergency, ArrivalAt: base.Add(time.Minute), Sequence: 2}
	regular := &Patient{ID: 1, Priority: Regular, ArrivalAt: base, Sequence: 1}
	assert.True(t, emergency.Before(regular), "emergency outranks earlier regular")
	assert.False(t, regular.Before(emergency))

	earlier := &Patient{ID: 3, Priority: Regular, ArrivalAt: base, Sequence: 3}
	later := &Patient{ID: 4, Priority: Regular, ArrivalAt: base.Add(time.Second), Sequence: 4}
	assert.True(t, earlier.Before(later), "same class orders by arrival")

	// Equal timestamps fall back to insertion sequence.
	first := &Patient{ID: 5, Priority: Regular, ArrivalAt: base, Sequence: 5}
	second := &Patient{ID: 6, Priority: Regular, ArrivalAt: base, Sequence: 6}
	assert.True(t, first.Before(second))
	assert.False(t, second.Before(first))
}

func TestNewAssignsMonotonicIdentity(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	clock.NowFunc = func() time.Time { return fixed }
	defer func() { clock.NowFunc = time.Now }()

	a := New("Alice", Regular, 5)
	b := New("Bob", Emergency, 9)

	assert.Greater(t, b.ID, a.ID)
	assert.Greater(t, b.Sequence, a.Sequence)
	assert.Equal(t, fixed, a.ArrivalAt)
	assert.Equal(t, GeneralWard, a.Ward)
	assert.Equal(t, CriticalCare, b.Ward)
}

func TestSnapshot(t *testing.T) {
	p := New("Diana", Emergency, 10)
	s := p.Snapshot()
	assert.Equal(t, p.ID, s.ID)
	assert.Equal(t, "Diana", s.Name)
	assert.Equal(t, "EMERGENCY", s.Priority)
	assert.Equal(t, "CRITICAL_CARE", s.Ward)
	assert.Equal(t, 10, s.Severity)
}
