// Package clock lets the scheduler and the dev store run on injected time.
// Production code uses Real(); tests use Fake() and move time with Advance.
package clock

import "time"

type Clock interface {
	Now() time.Time

	// After behaves like time.After.
	After(d time.Duration) <-chan time.Time

	// NewTicker behaves like time.NewTicker and panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers ticks on C, capacity 1. A slow reader loses ticks rather
// than queueing them, as with time.Ticker.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns the ticker off. C is not closed.
func (t *Ticker) Stop() { t.stopFunc() }

type realClock struct{}

func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (realClock) NewTicker(d time.Duration) *Ticker {
	ticker := time.NewTicker(d)
	return &Ticker{C: ticker.C, stopFunc: ticker.Stop}
}
