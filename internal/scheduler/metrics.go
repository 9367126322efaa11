package scheduler

import (
	"sync"
	"time"
)

// SchedulerMetrics tracks trigger activity of the engine
type SchedulerMetrics struct {
	mu                  sync.RWMutex
	TriggersFired       int64
	DispatchFailures    int64
	OneShotsRun         int64
	Rehydrated          int64
	RehydrateFailures   int64
	AverageDispatchTime time.Duration
	LastFireTime        time.Time
	totalDispatchTime   time.Duration
}

// MetricsSummary provides a summary of scheduler metrics
type MetricsSummary struct {
	ArmedTriggers       int       `json:"armed_triggers"`
	PendingOneShots     int       `json:"pending_one_shots"`
	TriggersFired       int64     `json:"triggers_fired"`
	DispatchFailures    int64     `json:"dispatch_failures"`
	OneShotsRun         int64     `json:"one_shots_run"`
	Rehydrated          int64     `json:"rehydrated"`
	RehydrateFailures   int64     `json:"rehydrate_failures"`
	AverageDispatchTime string    `json:"average_dispatch_time"`
	LastFireTime        time.Time `json:"last_fire_time"`
	ErrorRate           float64   `json:"error_rate_percentage"`
	Running             bool      `json:"running"`
}

// NewSchedulerMetrics creates a new metrics instance
func NewSchedulerMetrics() *SchedulerMetrics {
	return &SchedulerMetrics{}
}

// RecordFire records one trigger firing and how long its dispatch took
func (m *SchedulerMetrics) RecordFire(at time.Time, duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TriggersFired++
	if failed {
		m.DispatchFailures++
	}
	m.LastFireTime = at
	m.totalDispatchTime += duration
	m.AverageDispatchTime = m.totalDispatchTime / time.Duration(m.TriggersFired)
}

// RecordOneShot increments the one-shot task counter
func (m *SchedulerMetrics) RecordOneShot() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OneShotsRun++
}

// RecordRehydrate records the outcome of a bulk arm
func (m *SchedulerMetrics) RecordRehydrate(armed, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Rehydrated += int64(armed)
	m.RehydrateFailures += int64(failed)
}

// Summary returns a snapshot; gauges are supplied by the engine.
func (m *SchedulerMetrics) Summary(armed, pending int, running bool) MetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSummary{
		ArmedTriggers:       armed,
		PendingOneShots:     pending,
		TriggersFired:       m.TriggersFired,
		DispatchFailures:    m.DispatchFailures,
		OneShotsRun:         m.OneShotsRun,
		Rehydrated:          m.Rehydrated,
		RehydrateFailures:   m.RehydrateFailures,
		AverageDispatchTime: m.AverageDispatchTime.String(),
		LastFireTime:        m.LastFireTime,
		ErrorRate:           m.calculateErrorRate() * 100,
		Running:             running,
	}
}

// calculateErrorRate computes the share of fires whose dispatch failed
func (m *SchedulerMetrics) calculateErrorRate() float64 {
	if m.TriggersFired == 0 {
		return 0.0
	}
	return float64(m.DispatchFailures) / float64(m.TriggersFired)
}

// Reset resets all metrics to zero
func (m *SchedulerMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TriggersFired = 0
	m.DispatchFailures = 0
	m.OneShotsRun = 0
	m.Rehydrated = 0
	m.RehydrateFailures = 0
	m.AverageDispatchTime = 0
	m.LastFireTime = time.Time{}
	m.totalDispatchTime = 0
}
