package status

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option customises the status reporter.
type Option func(*Reporter)

// WithInterval overrides the reporting period.
func WithInterval(interval time.Duration) Option {
	return func(r *Reporter) {
		if interval > 0 {
			r.config.Interval = interval
		}
	}
}

// WithLogger overrides the reporter logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(r *Reporter) { r.logger = logger }
}
