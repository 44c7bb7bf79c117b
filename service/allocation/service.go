package allocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/capacity"
	"github.com/wardflow/wardflow/service/event"
	"github.com/wardflow/wardflow/tracing"
)

// Config represents allocation service configuration
type Config struct {
	// HoldDuration is the simulated service time a task keeps its ward slot.
	HoldDuration time.Duration
}

// DefaultConfig returns the default allocation configuration
func DefaultConfig() Config {
	return Config{HoldDuration: time.Second}
}

// Service runs one-shot allocation tasks against the two ward pools. Each
// dispatched patient gets its own goroutine that acquires the matching pool,
// holds the slot for the configured duration and releases it. This workflow
// is fully independent of the triage/bed subsystem.
type Service struct {
	config   Config
	critical *capacity.Pool
	general  *capacity.Pool
	patients *event.Publisher[patient.Snapshot]
	logger   *logrus.Entry
	wg       sync.WaitGroup
}

// New creates an allocation service
func New(critical, general *capacity.Pool, options ...Option) (*Service, error) {
	s := &Service{
		config:   DefaultConfig(),
		critical: critical,
		general:  general,
		logger:   logrus.WithField("service", "allocation"),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.critical == nil || s.general == nil {
		return nil, fmt.Errorf("both ward pools are required")
	}
	return s, nil
}

// Dispatch spawns the allocation task for the patient. The task owns the
// record exclusively from this point on.
func (s *Service) Dispatch(ctx context.Context, p *patient.Patient) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.allocate(ctx, p)
	}()
}

// poolFor selects the ward pool matching the patient's classification.
func (s *Service) poolFor(w patient.Ward) *capacity.Pool {
	if w == patient.CriticalCare {
		return s.critical
	}
	return s.general
}

func (s *Service) allocate(ctx context.Context, p *patient.Patient) {
	taskID := uuid.New().String()
	ctx, span := tracing.StartSpan(ctx, "allocation.allocate", "INTERNAL")
	span.WithAttributes(map[string]string{
		"task.id":      taskID,
		"patient.id":   fmt.Sprintf("%d", p.ID),
		"patient.ward": p.Ward.String(),
	})

	pool := s.poolFor(p.Ward)
	fields := logrus.Fields{"patient": p.Name, "ward": pool.Name(), "severity": p.Severity}
	s.logger.WithFields(fields).Info("ward requested")
	s.publish(ctx, p, event.TypeWardRequested)

	if err := pool.Acquire(ctx); err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("ward acquisition abandoned")
		tracing.EndSpan(span, err)
		return
	}

	s.logger.WithFields(fields).Info("ward allocated")
	s.publish(ctx, p, event.TypeWardAllocated)

	// Hold runs on a plain timer: an in-flight task completes its stay and
	// releases its slot even when shutdown has been signalled.
	time.Sleep(s.config.HoldDuration)

	pool.Release()
	s.logger.WithFields(fields).Info("ward released")
	s.publish(ctx, p, event.TypeWardReleased)
	tracing.EndSpan(span, nil)
}

// publish emits a ward lifecycle event; failures never abort the allocation.
func (s *Service) publish(ctx context.Context, p *patient.Patient, eventType string) {
	if s.patients == nil {
		return
	}
	if err := s.patients.Publish(ctx, event.NewEvent(&event.Context{
		PatientID: p.ID,
		EventType: eventType,
		Service:   "allocation",
	}, p.Snapshot())); err != nil {
		s.logger.WithError(err).Debug("failed to publish ward event")
	}
}

// Wait blocks until every dispatched task has completed.
func (s *Service) Wait() {
	s.wg.Wait()
}
