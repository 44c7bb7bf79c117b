package wardflow

import (
	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/service/event"
	"github.com/wardflow/wardflow/service/journal"
	"github.com/wardflow/wardflow/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/time/rate"
)

// Option customises the engine service.
type Option func(s *Service)

// WithConfig replaces the whole configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithBedCapacity sets the shared bed pool capacity.
func WithBedCapacity(total int) Option {
	return func(s *Service) { s.config.Beds.Total = total }
}

// WithWardCapacity sets the critical-care and general-ward pool capacities.
func WithWardCapacity(criticalCare, generalWard int) Option {
	return func(s *Service) {
		s.config.Beds.CriticalCare = criticalCare
		s.config.Beds.GeneralWard = generalWard
	}
}

// WithQueueCapacity bounds the triage queue.
func WithQueueCapacity(maxPending int) Option {
	return func(s *Service) { s.config.Queue.MaxPending = maxPending }
}

// WithWorkerIntervals overrides the worker pacing; empty strings keep the
// current values.
func WithWorkerIntervals(admissionTick, dischargeEvery, statusEvery, wardHold string) Option {
	return func(s *Service) {
		if admissionTick != "" {
			s.config.Workers.AdmissionTick = admissionTick
		}
		if dischargeEvery != "" {
			s.config.Workers.DischargeEvery = dischargeEvery
		}
		if statusEvery != "" {
			s.config.Workers.StatusEvery = statusEvery
		}
		if wardHold != "" {
			s.config.Workers.WardHold = wardHold
		}
	}
}

// WithEventService sets the event service.
func WithEventService(service *event.Service) Option {
	return func(s *Service) { s.events = service }
}

// WithJournal attaches a durable event journal.
func WithJournal(service *journal.Service) Option {
	return func(s *Service) { s.journal = service }
}

// WithIntakeLimit throttles the intake boundary to ratePerSecond submissions
// with the given burst.
func WithIntakeLimit(ratePerSecond float64, burst int) Option {
	return func(s *Service) {
		if ratePerSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
		}
	}
}

// WithLogger overrides the engine logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file
// path. First successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter (OTLP, Jaeger, Zipkin, ...). First successful initialisation
// wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
