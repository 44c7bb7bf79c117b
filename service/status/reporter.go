package status

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/capacity"
	"github.com/wardflow/wardflow/service/triage"
)

// Config represents status reporter configuration
type Config struct {
	// Interval is the reporting period.
	Interval time.Duration
}

// DefaultConfig returns the default reporter configuration
func DefaultConfig() Config {
	return Config{Interval: 4 * time.Second}
}

// Report is a point-in-time view of the engine. Readings of the individual
// counters are each consistent but the report as a whole is not a global
// atomic snapshot; it is for display only.
type Report struct {
	Beds              bed.Capacity `json:"beds"`
	Queued            int          `json:"queued"`
	CriticalAvailable int          `json:"criticalAvailable"`
	GeneralAvailable  int          `json:"generalAvailable"`
}

// Reporter periodically logs a Report. It is purely observational and never
// mutates engine state.
type Reporter struct {
	config   Config
	beds     *bed.Pool
	queue    *triage.Queue
	critical *capacity.Pool
	general  *capacity.Pool
	logger   *logrus.Entry

	cancelFn context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a status reporter
func New(beds *bed.Pool, queue *triage.Queue, critical, general *capacity.Pool, options ...Option) (*Reporter, error) {
	r := &Reporter{
		config:   DefaultConfig(),
		beds:     beds,
		queue:    queue,
		critical: critical,
		general:  general,
		logger:   logrus.WithField("service", "status"),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.beds == nil || r.queue == nil {
		return nil, fmt.Errorf("bed pool and triage queue are required")
	}
	return r, nil
}

// Read assembles a report from the current counters.
func (r *Reporter) Read() Report {
	report := Report{
		Beds:   r.beds.Snapshot(),
		Queued: r.queue.Size(),
	}
	if r.critical != nil {
		report.CriticalAvailable = r.critical.Available()
	}
	if r.general != nil {
		report.GeneralAvailable = r.general.Available()
	}
	return report
}

// Start launches the reporting loop.
func (r *Reporter) Start(ctx context.Context) error {
	ctx, r.cancelFn = context.WithCancel(ctx)
	r.wg.Add(1)
	go r.run(ctx)
	return nil
}

func (r *Reporter) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report := r.Read()
			r.logger.WithFields(logrus.Fields{
				"occupied":          report.Beds.Occupied,
				"total":             report.Beds.Total,
				"queued":            report.Queued,
				"criticalAvailable": report.CriticalAvailable,
				"generalAvailable":  report.GeneralAvailable,
			}).Info("status")
		}
	}
}

// Shutdown stops the reporter and waits for it to exit.
func (r *Reporter) Shutdown() {
	if r.cancelFn != nil {
		r.cancelFn()
	}
	r.wg.Wait()
}
