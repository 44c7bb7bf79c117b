package admission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/event"
	"github.com/wardflow/wardflow/service/triage"
	"github.com/wardflow/wardflow/tracing"
)

// Config represents admission service configuration
type Config struct {
	// TickInterval is the fallback wake-up period; the worker normally wakes
	// on the queue's push signal.
	TickInterval time.Duration
}

// DefaultConfig returns the default admission configuration
func DefaultConfig() Config {
	return Config{TickInterval: time.Second}
}

// Service drains the triage queue into the bed pool. A single worker loop
// blocks on the queue signal (with a periodic fallback tick) and transfers
// patients whenever beds are free.
type Service struct {
	config    Config
	queue     *triage.Queue
	beds      *bed.Pool
	patients  *event.Publisher[patient.Snapshot]
	occupancy *event.Publisher[bed.Capacity]
	logger    *logrus.Entry

	cancelFn context.CancelFunc
	wg       sync.WaitGroup
}

// New creates an admission service
func New(queue *triage.Queue, beds *bed.Pool, options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		queue:  queue,
		beds:   beds,
		logger: logrus.WithField("service", "admission"),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.queue == nil {
		return nil, fmt.Errorf("triage queue is required")
	}
	if s.beds == nil {
		return nil, fmt.Errorf("bed pool is required")
	}
	return s, nil
}

// Start launches the worker loop. It returns immediately; call Shutdown to
// stop and join the worker.
func (s *Service) Start(ctx context.Context) error {
	ctx, s.cancelFn = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx)
	return nil
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.queue.Signal():
			s.drain(ctx)
		case <-ticker.C:
			s.drain(ctx)
		}
	}
}

// drain admits queued patients while beds remain. The bed is reserved before
// the pop so a racing consumer cannot strand a patient: when the queue turns
// out to be empty the reservation is returned.
func (s *Service) drain(ctx context.Context) {
	for {
		if !s.beds.TryAdmit() {
			return
		}
		p, ok := s.queue.Pop()
		if !ok {
			s.beds.Discharge()
			return
		}
		s.admit(ctx, p)
	}
}

func (s *Service) admit(ctx context.Context, p *patient.Patient) {
	ctx, span := tracing.StartSpan(ctx, "admission.admit", "INTERNAL")
	span.WithAttributes(map[string]string{
		"patient.id":       fmt.Sprintf("%d", p.ID),
		"patient.priority": p.Priority.String(),
	})
	defer tracing.EndSpan(span, nil)

	snapshot := s.beds.Snapshot()
	s.logger.WithFields(logrus.Fields{
		"patient":  p.Name,
		"priority": p.Priority.String(),
		"occupied": snapshot.Occupied,
		"total":    snapshot.Total,
	}).Info("admitted")

	s.publish(ctx, p.Snapshot(), snapshot)
}

// publish emits the admission events; failures never abort the admission.
func (s *Service) publish(ctx context.Context, snap patient.Snapshot, occupancy bed.Capacity) {
	if s.patients != nil {
		if err := s.patients.Publish(ctx, event.NewEvent(&event.Context{
			PatientID: snap.ID,
			EventType: event.TypeAdmitted,
			Service:   "admission",
		}, snap)); err != nil {
			s.logger.WithError(err).Debug("failed to publish admission event")
		}
	}
	if s.occupancy != nil {
		if err := s.occupancy.Publish(ctx, event.NewEvent(&event.Context{
			EventType: event.TypeBedStatus,
			Service:   "admission",
		}, occupancy)); err != nil {
			s.logger.WithError(err).Debug("failed to publish occupancy event")
		}
	}
}

// Shutdown stops the worker and waits for it to finish any in-flight
// critical section.
func (s *Service) Shutdown() {
	if s.cancelFn != nil {
		s.cancelFn()
	}
	s.wg.Wait()
}
