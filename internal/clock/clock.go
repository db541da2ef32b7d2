// Package clock provides the pausable simulation clock used by the hosts.
// Game time is reported as a duration since the clock's epoch.
package clock

import (
	"sync"
	"time"
)

// Clock is a pausable clock. While paused, Elapsed is frozen; time spent
// paused never counts toward game time.
type Clock struct {
	mu sync.RWMutex

	now         func() time.Time
	start       time.Time // Epoch (real time)
	paused      bool
	pauseStart  time.Time     // When the current pause started (real time)
	totalPaused time.Duration // Cumulative pause duration
}

// New creates a running clock using the wall clock.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a running clock reading real time from now.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns game time since the epoch.
func (c *Clock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused {
		return c.pauseStart.Sub(c.start) - c.totalPaused
	}
	return c.now().Sub(c.start) - c.totalPaused
}

// Reset restarts the epoch and clears pause state.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.start = c.now()
	c.paused = false
	c.pauseStart = time.Time{}
	c.totalPaused = 0
}

// Pause stops game time. Pausing a paused clock is a no-op.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.now()
}

// Resume continues game time. Resuming a running clock is a no-op.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return
	}
	c.totalPaused += c.now().Sub(c.pauseStart)
	c.paused = false
	c.pauseStart = time.Time{}
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// TotalPaused returns the cumulative pause duration, including the
// current pause.
func (c *Clock) TotalPaused() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.totalPaused
	if c.paused {
		total += c.now().Sub(c.pauseStart)
	}
	return total
}
