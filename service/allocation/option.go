package allocation

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/event"
)

// Option customises the allocation service.
type Option func(*Service)

// WithHoldDuration overrides the simulated service time.
func WithHoldDuration(duration time.Duration) Option {
	return func(s *Service) {
		if duration > 0 {
			s.config.HoldDuration = duration
		}
	}
}

// WithPatientPublisher sets the publisher for ward lifecycle events.
func WithPatientPublisher(publisher *event.Publisher[patient.Snapshot]) Option {
	return func(s *Service) { s.patients = publisher }
}

// WithLogger overrides the service logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Service) { s.logger = logger }
}
