package common

import (
	"sync"
	"time"
)

// Clock abstracts the current time so schedules can be tested deterministically
type Clock interface {
	Now() time.Time
	After(duration time.Duration) <-chan time.Time
}

// RealClock implements Clock using the standard time package
type RealClock struct{}

// NewRealClock creates a new RealClock instance
func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) After(duration time.Duration) <-chan time.Time {
	return time.After(duration)
}

// MockClock implements Clock for testing with controllable time
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
}

type mockTimer struct {
	deadline time.Time
	channel  chan time.Time
	fired    bool
}

// NewMockClock creates a new MockClock with the specified initial time
func NewMockClock(initialTime time.Time) *MockClock {
	return &MockClock{currentTime: initialTime}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) After(duration time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer := &mockTimer{
		deadline: c.currentTime.Add(duration),
		channel:  make(chan time.Time, 1),
	}
	c.timers = append(c.timers, timer)
	c.fireDue()
	return timer.channel
}

// Advance moves the clock forward and fires every timer now due
func (c *MockClock) Advance(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentTime = c.currentTime.Add(duration)
	c.fireDue()
}

// SetTime sets the clock to a specific instant
func (c *MockClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentTime = t
	c.fireDue()
}

func (c *MockClock) fireDue() {
	for _, timer := range c.timers {
		if !timer.fired && !timer.deadline.After(c.currentTime) {
			timer.fired = true
			timer.channel <- c.currentTime
		}
	}
}
