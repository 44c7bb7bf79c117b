package admission

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/event"
)

// Option customises the admission service.
type Option func(*Service)

// WithTickInterval overrides the fallback wake-up period.
func WithTickInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.config.TickInterval = interval
		}
	}
}

// WithPatientPublisher sets the publisher for patient lifecycle events.
func WithPatientPublisher(publisher *event.Publisher[patient.Snapshot]) Option {
	return func(s *Service) { s.patients = publisher }
}

// WithOccupancyPublisher sets the publisher for bed occupancy events.
func WithOccupancyPublisher(publisher *event.Publisher[bed.Capacity]) Option {
	return func(s *Service) { s.occupancy = publisher }
}

// WithLogger overrides the service logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Service) { s.logger = logger }
}
