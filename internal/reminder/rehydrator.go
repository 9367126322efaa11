package reminder

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"remindbot/internal/scheduler"
	"remindbot/internal/timerule"

	"go.uber.org/zap"
)

// ReconcileResult summarizes one reconciliation pass
type ReconcileResult struct {
	Rows     int `json:"rows"`
	Armed    int `json:"armed"`
	Disarmed int `json:"disarmed"`
}

// Rehydrator installs one trigger per persisted reminder. Run is the
// start-up pass; Reconcile may run periodically afterwards to re-arm rows
// with their owner's current timezone and to disarm triggers whose rows
// are gone.
type Rehydrator struct {
	store    Store
	triggers Triggers
	logger   *zap.Logger

	done      atomic.Bool
	reconcile sync.Mutex
}

// NewRehydrator creates a new Rehydrator
func NewRehydrator(store Store, triggers Triggers, logger *zap.Logger) *Rehydrator {
	return &Rehydrator{
		store:    store,
		triggers: triggers,
		logger:   logger,
	}
}

// Run arms every stored reminder. It must complete before commands are
// accepted and succeeds at most once per process; a store failure leaves it
// runnable again.
func (r *Rehydrator) Run(ctx context.Context) (int, error) {
	if !r.done.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRehydrated
	}

	start := time.Now()
	jobs, err := r.loadJobs(ctx)
	if err != nil {
		r.done.Store(false)
		return 0, err
	}

	armed, err := r.triggers.RehydrateAll(jobs)
	r.logger.Info("Reminders rehydrated",
		zap.Int("rows", len(jobs)),
		zap.Int("armed", armed),
		zap.Duration("took", time.Since(start)))
	if err != nil {
		r.logger.Warn("Some reminders could not be armed", zap.Error(err))
	}
	return armed, err
}

// Reconcile re-arms every stored reminder and cancels triggers that no
// longer have a row. Ids are only disarmed if they were armed before the
// store was read, so reminders created during the pass are kept.
func (r *Rehydrator) Reconcile(ctx context.Context) (ReconcileResult, error) {
	r.reconcile.Lock()
	defer r.reconcile.Unlock()

	armedBefore := r.triggers.ArmedIDs()

	jobs, err := r.loadJobs(ctx)
	if err != nil {
		r.logger.Error("Reconciliation failed to read reminders", zap.Error(err))
		return ReconcileResult{}, err
	}

	armed, armErr := r.triggers.RehydrateAll(jobs)

	present := make(map[int64]struct{}, len(jobs))
	for _, job := range jobs {
		present[job.ID] = struct{}{}
	}

	disarmed := 0
	for _, id := range armedBefore {
		if _, ok := present[id]; ok {
			continue
		}
		if r.triggers.Cancel(id) {
			disarmed++
			r.logger.Info("Disarmed orphaned trigger", zap.Int64("reminder_id", id))
		}
	}

	result := ReconcileResult{Rows: len(jobs), Armed: armed, Disarmed: disarmed}
	r.logger.Debug("Reconciliation finished",
		zap.Int("rows", result.Rows),
		zap.Int("armed", result.Armed),
		zap.Int("disarmed", result.Disarmed))
	return result, armErr
}

func (r *Rehydrator) loadJobs(ctx context.Context) ([]scheduler.Job, error) {
	rows, err := r.store.ListAllWithResolvedTimezone(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]scheduler.Job, 0, len(rows))
	for _, row := range rows {
		if _, err := time.LoadLocation(row.Timezone); err != nil {
			r.logger.Warn("Stored timezone is unknown, falling back to UTC",
				zap.Int64("reminder_id", row.ID),
				zap.String("timezone", row.Timezone))
			row.Timezone = timerule.DefaultLocation
		}
		jobs = append(jobs, row.Job())
	}
	return jobs, nil
}
