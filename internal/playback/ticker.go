package playback

import (
	"context"
	"time"
)

// Ticker is a wall-clock tick source.
type Ticker struct {
	t *time.Ticker
	C <-chan time.Time
}

func NewTicker(period time.Duration) *Ticker {
	if period <= 0 {
		period = DefaultInterval
	}
	t := time.NewTicker(period)
	return &Ticker{t: t, C: t.C}
}

func (t *Ticker) Stop() { t.t.Stop() }

// RunEvery drives s from a wall-clock ticker until ctx is done.
func RunEvery(ctx context.Context, s *Scheduler, period time.Duration) error {
	t := NewTicker(period)
	defer t.Stop()
	return s.Run(ctx, t.C)
}

// ManualClock is a tick source advanced by hand.
type ManualClock struct {
	now time.Time
	ch  chan time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, ch: make(chan time.Time)}
}

func (c *ManualClock) C() <-chan time.Time { return c.ch }

// Tick advances the clock by d and blocks until the tick is received.
func (c *ManualClock) Tick(d time.Duration) {
	c.now = c.now.Add(d)
	c.ch <- c.now
}

// Close ends the tick stream.
func (c *ManualClock) Close() { close(c.ch) }
