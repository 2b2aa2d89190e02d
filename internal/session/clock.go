package session

import "time"

// Clock delivers simulation ticks.
type Clock interface {
	C() <-chan time.Time
	Stop()
}

type tickerClock struct {
	t *time.Ticker
}

// NewTickerClock returns a wall-clock Clock firing every interval.
func NewTickerClock(interval time.Duration) Clock {
	return &tickerClock{t: time.NewTicker(interval)}
}

func (c *tickerClock) C() <-chan time.Time { return c.t.C }
func (c *tickerClock) Stop()               { c.t.Stop() }

// ManualClock fires only when Advance is called. Useful for tests and for
// running the simulation as fast as possible.
type ManualClock struct {
	ch chan time.Time
}

// NewManualClock creates a clock with no pending ticks.
func NewManualClock() *ManualClock {
	return &ManualClock{ch: make(chan time.Time)}
}

// C returns the tick channel.
func (c *ManualClock) C() <-chan time.Time { return c.ch }

// Stop is a no-op.
func (c *ManualClock) Stop() {}

// Advance blocks until the loop has taken one tick.
func (c *ManualClock) Advance() {
	c.ch <- time.Time{}
}
