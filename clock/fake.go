package clock

import (
	"sync"
	"time"
)

// FakeClock stands still until Advance is called. Safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeWaiter
	changed *sync.Cond
}

type fakeWaiter struct {
	deadline time.Time
	channel  chan time.Time
	interval time.Duration // non-zero for tickers
	stopped  bool
	done     chan struct{} // closed by Ticker.Stop; nil for After
}

func Fake(initial time.Time) *FakeClock {
	c := &FakeClock{current: initial}
	c.changed = sync.NewCond(&c.mu)
	return c
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.current
		return channel
	}
	c.addLocked(&fakeWaiter{deadline: c.current.Add(d), channel: channel})
	return channel
}

func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	waiter := &fakeWaiter{deadline: c.current.Add(d), channel: channel, interval: d, done: make(chan struct{})}
	c.addLocked(waiter)

	return &Ticker{
		C: channel,
		stopFunc: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if waiter.stopped {
				return
			}
			waiter.stopped = true
			close(waiter.done)
			c.changed.Broadcast()
		},
	}
}

// Advance moves time forward by d one deadline at a time, firing everything
// due at each step. Now reports the step being fired. A ticker spanning
// several intervals fires once per interval: a tick waits until the
// receiver has taken the previous one, so none are dropped. Stopping the
// ticker releases a pending tick.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		due := c.collectNext(target)
		if len(due) == 0 {
			return
		}
		for _, fired := range due {
			select {
			case fired.channel <- fired.at:
			case <-fired.done:
			}
		}
	}
}

type firing struct {
	channel chan time.Time
	done    <-chan struct{}
	at      time.Time
}

// collectNext moves the clock to the earliest deadline not after target and
// returns the waiters due then. With nothing due the clock lands on target.
func (c *FakeClock) collectNext(target time.Time) []firing {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *fakeWaiter
	for _, waiter := range c.waiters {
		if waiter.stopped || waiter.deadline.After(target) {
			continue
		}
		if next == nil || waiter.deadline.Before(next.deadline) {
			next = waiter
		}
	}
	if next == nil {
		c.current = target
		return nil
	}
	at := next.deadline
	c.current = at

	var fired []firing
	var remaining []*fakeWaiter
	for _, waiter := range c.waiters {
		switch {
		case waiter.stopped:
		case waiter.deadline.Equal(at):
			fired = append(fired, firing{channel: waiter.channel, done: waiter.done, at: at})
			if waiter.interval > 0 {
				waiter.deadline = waiter.deadline.Add(waiter.interval)
				remaining = append(remaining, waiter)
			}
		default:
			remaining = append(remaining, waiter)
		}
	}
	c.waiters = remaining
	c.changed.Broadcast()
	return fired
}

// WaitForTimers blocks until at least n timers or tickers are pending, which
// closes the race between a goroutine creating a ticker and the test calling
// Advance.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pendingLocked() < n {
		c.changed.Wait()
	}
}

func (c *FakeClock) addLocked(waiter *fakeWaiter) {
	c.waiters = append(c.waiters, waiter)
	c.changed.Broadcast()
}

func (c *FakeClock) pendingLocked() int {
	count := 0
	for _, waiter := range c.waiters {
		if !waiter.stopped {
			count++
		}
	}
	return count
}
