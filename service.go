package wardflow

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/admission"
	"github.com/wardflow/wardflow/service/allocation"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/capacity"
	"github.com/wardflow/wardflow/service/discharge"
	"github.com/wardflow/wardflow/service/event"
	"github.com/wardflow/wardflow/service/journal"
	"github.com/wardflow/wardflow/service/status"
	"github.com/wardflow/wardflow/service/triage"
	"golang.org/x/time/rate"
)

// Service assembles the admission engine: the triage queue, the shared bed
// pool, the two ward pools and the workers that mutate them, together with
// the event, journal and tracing plumbing.
type Service struct {
	runtime *Runtime
	config  *Config
	logger  *logrus.Logger
	events  *event.Service
	journal *journal.Service
	limiter *rate.Limiter
}

// New creates an engine service. It panics on an invalid configuration, so
// callers composing options programmatically should validate first.
func New(options ...Option) *Service {
	ret := &Service{runtime: &Runtime{}, config: DefaultConfig()}
	if err := ret.init(options); err != nil {
		panic(fmt.Sprintf("wardflow: %v", err))
	}
	return ret
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	s.ensureBaseSetup()

	r := s.runtime
	patients := event.PublisherOf[patient.Snapshot](s.events)
	occupancy := event.PublisherOf[bed.Capacity](s.events)

	var err error
	if r.admission, err = admission.New(r.queue, r.beds,
		admission.WithTickInterval(s.config.Workers.AdmissionTickDuration()),
		admission.WithPatientPublisher(patients),
		admission.WithOccupancyPublisher(occupancy),
		admission.WithLogger(s.logger.WithField("service", "admission"))); err != nil {
		return err
	}

	if r.discharge, err = discharge.New(r.beds,
		discharge.WithInterval(s.config.Workers.DischargeEveryDuration()),
		discharge.WithOccupancyPublisher(occupancy),
		discharge.WithLogger(s.logger.WithField("service", "discharge"))); err != nil {
		return err
	}

	if r.allocation, err = allocation.New(r.critical, r.general,
		allocation.WithHoldDuration(s.config.Workers.WardHoldDuration()),
		allocation.WithPatientPublisher(patients),
		allocation.WithLogger(s.logger.WithField("service", "allocation"))); err != nil {
		return err
	}

	if r.reporter, err = status.New(r.beds, r.queue, r.critical, r.general,
		status.WithInterval(s.config.Workers.StatusEveryDuration()),
		status.WithLogger(s.logger.WithField("service", "status"))); err != nil {
		return err
	}

	if s.journal != nil {
		s.journal.Attach(s.events)
	}

	r.patients = patients
	r.events = s.events
	r.limiter = s.limiter
	r.logger = s.logger.WithField("service", "intake")
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if s.events == nil {
		s.events = event.New()
	}
	r := s.runtime
	if r.queue == nil {
		r.queue = triage.New(s.config.Queue.MaxPending)
	}
	if r.beds == nil {
		r.beds = bed.New(s.config.Beds.Total)
	}
	if r.critical == nil {
		r.critical = capacity.New("critical-care", s.config.Beds.CriticalCare)
	}
	if r.general == nil {
		r.general = capacity.New("general-ward", s.config.Beds.GeneralWard)
	}
}

// Runtime returns the engine's operational surface.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Events returns the engine's event service.
func (s *Service) Events() *event.Service {
	return s.events
}
