package discharge

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/event"
)

// Option customises the discharge service.
type Option func(*Service)

// WithInterval overrides the discharge period.
func WithInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.config.Interval = interval
		}
	}
}

// WithOccupancyPublisher sets the publisher for bed occupancy events.
func WithOccupancyPublisher(publisher *event.Publisher[bed.Capacity]) Option {
	return func(s *Service) { s.occupancy = publisher }
}

// WithLogger overrides the service logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Service) { s.logger = logger }
}
