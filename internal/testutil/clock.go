package testutil

import (
	"sync"
	"time"
)

// Clock is a controllable time source. Every call to Now advances it by Step.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock starts at 2026-01-01 00:00:00 UTC unless a time is given.
func NewClock(now ...time.Time) *Clock {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if len(now) > 0 {
		t = now[0]
	}
	return &Clock{now: t}
}

// WithStep makes each Now call return a time step later than the previous one.
func (c *Clock) WithStep(step time.Duration) *Clock {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = step
	return c
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
