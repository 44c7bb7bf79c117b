// Package wardflow implements a concurrent admission and bed-allocation
// engine for a capacity-constrained facility. Patients flow through one of
// two independent workflows: a priority-ordered triage queue drained into a
// bounded bed pool by background workers, or one-shot allocation tasks
// acquiring slots from independently capacitated ward pools. All counters are
// guarded by their own locks, workers observe cooperative cancellation, and
// every state transition is published as an event.
package wardflow
