package discharge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/event"
)

// Config represents discharge service configuration
type Config struct {
	// Interval is the period between discharge attempts.
	Interval time.Duration
}

// DefaultConfig returns the default discharge configuration
func DefaultConfig() Config {
	return Config{Interval: 5 * time.Second}
}

// Service periodically frees bed capacity. Discharge is anonymous: the pool
// tracks occupancy only, so the release carries no patient identity.
type Service struct {
	config    Config
	beds      *bed.Pool
	occupancy *event.Publisher[bed.Capacity]
	logger    *logrus.Entry

	cancelFn context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a discharge service
func New(beds *bed.Pool, options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		beds:   beds,
		logger: logrus.WithField("service", "discharge"),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.beds == nil {
		return nil, fmt.Errorf("bed pool is required")
	}
	return s, nil
}

// Start launches the worker loop.
func (s *Service) Start(ctx context.Context) error {
	ctx, s.cancelFn = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx)
	return nil
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dischargeOne(ctx)
		}
	}
}

func (s *Service) dischargeOne(ctx context.Context) {
	if !s.beds.Discharge() {
		return
	}
	snapshot := s.beds.Snapshot()
	s.logger.WithFields(logrus.Fields{
		"occupied": snapshot.Occupied,
		"total":    snapshot.Total,
	}).Info("discharged")

	if s.occupancy == nil {
		return
	}
	// The release and the resulting occupancy change are separate records,
	// mirroring the admission path.
	s.publish(ctx, event.TypeDischarged, snapshot)
	s.publish(ctx, event.TypeBedStatus, snapshot)
}

func (s *Service) publish(ctx context.Context, eventType string, snapshot bed.Capacity) {
	if err := s.occupancy.Publish(ctx, event.NewEvent(&event.Context{
		EventType: eventType,
		Service:   "discharge",
	}, snapshot)); err != nil {
		s.logger.WithError(err).Debug("failed to publish discharge event")
	}
}

// Shutdown stops the worker and waits for it to exit.
func (s *Service) Shutdown() {
	if s.cancelFn != nil {
		s.cancelFn()
	}
	s.wg.Wait()
}
