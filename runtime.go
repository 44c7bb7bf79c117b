package wardflow

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/admission"
	"github.com/wardflow/wardflow/service/allocation"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/capacity"
	"github.com/wardflow/wardflow/service/discharge"
	"github.com/wardflow/wardflow/service/event"
	"github.com/wardflow/wardflow/service/status"
	"github.com/wardflow/wardflow/service/triage"
	"github.com/wardflow/wardflow/tracing"
	"golang.org/x/time/rate"
)

// Runtime is the operational surface of the engine: the intake boundary plus
// worker lifecycle control.
type Runtime struct {
	queue    *triage.Queue
	beds     *bed.Pool
	critical *capacity.Pool
	general  *capacity.Pool

	admission  *admission.Service
	discharge  *discharge.Service
	allocation *allocation.Service
	reporter   *status.Reporter

	events   *event.Service
	patients *event.Publisher[patient.Snapshot]
	limiter  *rate.Limiter
	logger   *logrus.Entry
}

// Start launches the admission, discharge and status workers. Allocation
// tasks are spawned on demand by SubmitWardPatient.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.admission.Start(ctx); err != nil {
		return err
	}
	if err := r.discharge.Start(ctx); err != nil {
		return err
	}
	return r.reporter.Start(ctx)
}

// Shutdown stops the workers, waits for in-flight allocation tasks to
// complete and stops the event listeners. It returns ctx.Err() when the
// context expires before the joins finish.
func (r *Runtime) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.admission.Shutdown()
		r.discharge.Shutdown()
		r.reporter.Shutdown()
		r.allocation.Wait()
		r.events.Shutdown()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitPatient is the intake boundary for the priority path: it constructs
// the patient record, assigns identity and arrival facts and queues it for
// admission. A full queue drops the submission and returns false - the
// documented backpressure policy; the caller decides whether to surface it.
func (r *Runtime) SubmitPatient(ctx context.Context, name string, priority patient.Priority, severity int) (*patient.Patient, bool) {
	if !r.throttle(ctx) {
		return nil, false
	}
	ctx, span := tracing.StartSpan(ctx, "intake.submit", "INTERNAL")
	defer tracing.EndSpan(span, nil)

	p := patient.New(name, priority, severity)
	span.WithAttributes(map[string]string{"patient.id": fmt.Sprintf("%d", p.ID)})
	if !r.queue.Push(p) {
		r.logger.WithFields(logrus.Fields{"patient": name, "queued": r.queue.Size()}).
			Warn("triage queue full, submission dropped")
		return nil, false
	}

	r.logger.WithFields(logrus.Fields{
		"patient":  p.Name,
		"priority": p.Priority.String(),
		"severity": p.Severity,
	}).Info("checked in")
	if err := r.patients.Publish(ctx, event.NewEvent(&event.Context{
		PatientID: p.ID,
		EventType: event.TypeCheckIn,
		Service:   "intake",
	}, p.Snapshot())); err != nil {
		r.logger.WithError(err).Debug("failed to publish check-in event")
	}
	return p, true
}

// SubmitWardPatient is the intake boundary for the capacity-pool path: it
// constructs the patient record and spawns its allocation task. The two paths
// share no state.
func (r *Runtime) SubmitWardPatient(ctx context.Context, name string, severity int) *patient.Patient {
	if !r.throttle(ctx) {
		return nil
	}
	p := patient.New(name, patient.Regular, severity)
	r.allocation.Dispatch(ctx, p)
	return p
}

func (r *Runtime) throttle(ctx context.Context) bool {
	if r.limiter == nil {
		return true
	}
	return r.limiter.Wait(ctx) == nil
}

// Status returns a point-in-time view of the engine counters.
func (r *Runtime) Status() status.Report {
	return r.reporter.Read()
}

// Queue exposes the triage queue, primarily for observation.
func (r *Runtime) Queue() *triage.Queue { return r.queue }

// Beds exposes the shared bed pool, primarily for observation.
func (r *Runtime) Beds() *bed.Pool { return r.beds }

// Patients returns the patient lifecycle event publisher.
func (r *Runtime) Patients() *event.Publisher[patient.Snapshot] { return r.patients }
