package event

import "github.com/wardflow/wardflow/service/messaging/memory"

// Option customises the event service.
type Option func(*Service)

// WithQueueConfig overrides the per-type queue configuration factory.
func WithQueueConfig(factory func(name string) memory.Config) Option {
	return func(s *Service) {
		s.newQueueConfig = factory
	}
}
