package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"remindbot/internal/common"
	"remindbot/internal/timerule"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Payload is what a trigger delivers when it fires
type Payload struct {
	ChatID   int64  `json:"chat_id"`
	ThreadID int    `json:"thread_id,omitempty"`
	Text     string `json:"text"`
}

// Job is one reminder to arm: its id, recurrence and payload
type Job struct {
	ID      int64
	Rule    timerule.TimeRule
	Payload Payload
}

// DispatchFunc delivers a fired trigger. A returned error is counted and
// logged by the engine; the trigger stays armed either way.
type DispatchFunc func(ctx context.Context, id int64, payload Payload) error

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the clock used for one-shot deadlines and metrics.
func WithClock(clock common.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithDispatch sets the function invoked when a reminder trigger fires.
func WithDispatch(fn DispatchFunc) Option {
	return func(e *Engine) {
		e.dispatch = fn
	}
}

// Engine keeps at most one live trigger per reminder id and fires it on the
// reminder's weekly rule. It also runs one-shot and periodic maintenance tasks
// on the same cron instance.
type Engine struct {
	cron    *cron.Cron
	logger  *zap.Logger
	metrics *SchedulerMetrics
	clock   common.Clock

	mu       sync.Mutex
	dispatch DispatchFunc
	entries  map[int64]trigger
	onces    map[string]cron.EntryID

	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
}

// NewEngine creates an engine. Triggers may be armed before Start; they fire
// only while the engine is running.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	cl := newCronLogger(logger)

	e := &Engine{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		metrics: NewSchedulerMetrics(),
		clock:   common.NewRealClock(),
		entries: make(map[int64]trigger),
		onces:   make(map[string]cron.EntryID),
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetDispatch replaces the dispatch function. Triggers already armed pick
// up the new function on their next fire.
func (e *Engine) SetDispatch(fn DispatchFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch = fn
}

// Start begins firing triggers
func (e *Engine) Start(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return NewSchedulerError(ErrSchedulerAlreadyRunning, "scheduler is already running")
	}

	e.mu.Lock()
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.mu.Unlock()

	e.cron.Start()
	e.logger.Info("Reminder scheduler started", zap.Int("armed_triggers", e.Len()))
	return nil
}

// Stop halts firing and waits for in-flight deliveries until ctx expires.
func (e *Engine) Stop(ctx context.Context) error {
	if !e.running.CompareAndSwap(true, false) {
		return NewSchedulerError(ErrSchedulerNotRunning, "scheduler is not running")
	}

	e.logger.Info("Stopping reminder scheduler...")
	done := e.cron.Stop()

	select {
	case <-done.Done():
		e.cancelJobs()
		e.logger.Info("Reminder scheduler stopped successfully")
		return nil
	case <-ctx.Done():
		e.cancelJobs()
		e.logger.Warn("Scheduler shutdown timed out, some deliveries may still be running")
		return NewShutdownError("shutdown timeout exceeded", ctx.Err().Error())
	}
}

func (e *Engine) cancelJobs() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancel()
}

// IsRunning returns true if the scheduler is currently running
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// trigger is the live cron entry of one reminder and what it was armed with
type trigger struct {
	entryID cron.EntryID
	spec    string
	payload Payload
}

// Schedule arms the trigger for id, replacing any existing one. A trigger
// already armed with the same rule and payload is left in place, so its
// pending fire is never recomputed.
func (e *Engine) Schedule(id int64, rule timerule.TimeRule, payload Payload) error {
	if err := rule.Validate(); err != nil {
		return NewTriggerError(id, "schedule", err)
	}

	sched, err := rule.Schedule()
	if err != nil {
		return NewTriggerError(id, "schedule", err)
	}
	spec := rule.Spec()

	e.mu.Lock()
	defer e.mu.Unlock()

	if old, ok := e.entries[id]; ok {
		if old.spec == spec && old.payload == payload {
			return nil
		}
		e.cron.Remove(old.entryID)
	}
	e.entries[id] = trigger{
		entryID: e.cron.Schedule(sched, e.reminderJob(id, payload)),
		spec:    spec,
		payload: payload,
	}

	e.logger.Debug("Trigger armed",
		zap.Int64("reminder_id", id),
		zap.Stringer("rule", rule),
		zap.Int64("chat_id", payload.ChatID))
	return nil
}

// Cancel disarms the trigger for id. It reports whether one was armed;
// an unknown id is not an error.
func (e *Engine) Cancel(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	armed, ok := e.entries[id]
	if !ok {
		return false
	}
	e.cron.Remove(armed.entryID)
	delete(e.entries, id)

	e.logger.Debug("Trigger cancelled", zap.Int64("reminder_id", id))
	return true
}

// RehydrateAll arms every job. Jobs that cannot be armed are skipped and
// reported together in the returned error; the count covers armed jobs only.
func (e *Engine) RehydrateAll(jobs []Job) (int, error) {
	var (
		armed int
		errs  []error
	)
	for _, job := range jobs {
		if err := e.Schedule(job.ID, job.Rule, job.Payload); err != nil {
			e.logger.Warn("Skipping reminder that cannot be armed",
				zap.Int64("reminder_id", job.ID),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}
		armed++
	}

	e.metrics.RecordRehydrate(armed, len(errs))
	e.logger.Info("Triggers rehydrated",
		zap.Int("armed", armed),
		zap.Int("failed", len(errs)))
	return armed, errors.Join(errs...)
}

// IsArmed reports whether a trigger exists for id
func (e *Engine) IsArmed(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.entries[id]
	return ok
}

// ArmedIDs lists armed reminder ids in ascending order
func (e *Engine) ArmedIDs() []int64 {
	e.mu.Lock()
	ids := make([]int64, 0, len(e.entries))
	for id := range e.entries {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of armed reminder triggers
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

// NextFire returns the next fire instant of id strictly after `after`.
func (e *Engine) NextFire(id int64, after time.Time) (time.Time, bool) {
	e.mu.Lock()
	armed, ok := e.entries[id]
	e.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	entry := e.cron.Entry(armed.entryID)
	if !entry.Valid() {
		return time.Time{}, false
	}
	return entry.Schedule.Next(after), true
}

// RunNow fires the trigger for id synchronously, outside its schedule. It
// goes through the same recover and overlap guards as a scheduled fire.
func (e *Engine) RunNow(id int64) bool {
	e.mu.Lock()
	armed, ok := e.entries[id]
	e.mu.Unlock()
	if !ok {
		return false
	}

	entry := e.cron.Entry(armed.entryID)
	if !entry.Valid() {
		return false
	}
	entry.WrappedJob.Run()
	return true
}

// ScheduleOnce runs fn once after delay and returns a key for CancelOnce.
func (e *Engine) ScheduleOnce(delay time.Duration, fn func(ctx context.Context)) string {
	key := uuid.NewString()
	sched := &onceSchedule{at: e.clock.Now().Add(delay)}

	e.mu.Lock()
	defer e.mu.Unlock()

	var entryID cron.EntryID
	entryID = e.cron.Schedule(sched, cron.FuncJob(func() {
		e.mu.Lock()
		_, pending := e.onces[key]
		delete(e.onces, key)
		ctx := e.ctx
		e.mu.Unlock()
		if !pending {
			return
		}

		e.cron.Remove(entryID)
		e.metrics.RecordOneShot()
		fn(ctx)
	}))
	e.onces[key] = entryID
	return key
}

// CancelOnce drops a pending one-shot task.
func (e *Engine) CancelOnce(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entryID, ok := e.onces[key]
	if !ok {
		return false
	}
	e.cron.Remove(entryID)
	delete(e.onces, key)
	return true
}

// PendingOnce returns the number of one-shot tasks not yet run
func (e *Engine) PendingOnce() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.onces)
}

// ScheduleEvery runs fn on a fixed interval (rounded to whole seconds).
func (e *Engine) ScheduleEvery(interval time.Duration, fn func(ctx context.Context)) error {
	if interval < time.Second {
		return NewConfigurationError("interval", interval, "must be at least one second")
	}

	e.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		fn(e.jobContext())
	}))
	e.logger.Info("Maintenance task scheduled", zap.Duration("interval", interval))
	return nil
}

// Metrics returns a snapshot of engine counters
func (e *Engine) Metrics() MetricsSummary {
	e.mu.Lock()
	armed, pending := len(e.entries), len(e.onces)
	e.mu.Unlock()
	return e.metrics.Summary(armed, pending, e.IsRunning())
}

func (e *Engine) jobContext() context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx
}

func (e *Engine) reminderJob(id int64, payload Payload) cron.Job {
	return cron.FuncJob(func() {
		e.mu.Lock()
		dispatch, ctx := e.dispatch, e.ctx
		e.mu.Unlock()

		if dispatch == nil {
			e.logger.Warn("Trigger fired without a dispatcher", zap.Int64("reminder_id", id))
			return
		}

		start := e.clock.Now()
		err := dispatch(ctx, id, payload)
		e.metrics.RecordFire(start, e.clock.Now().Sub(start), err != nil)
		if err != nil {
			e.logger.Debug("Dispatch reported failure",
				zap.Int64("reminder_id", id),
				zap.Error(err))
		}
	})
}

// onceSchedule fires a single time. cron asks for Next when it starts, when
// the entry is added and after each run. Before the deadline the answer is
// always the deadline, so a task pending across Stop and Start keeps it. The
// first question at or past the deadline gets "now", which covers a deadline
// missed while stopped; later ones get zero. A repeated run is absorbed by the
// pending check in ScheduleOnce.
type onceSchedule struct {
	at      time.Time
	overdue atomic.Bool
}

func (s *onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	if s.overdue.Swap(true) {
		return time.Time{}
	}
	return t
}
