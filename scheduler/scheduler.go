// Package scheduler drives the periodic fetch.
//
// Ticks are posted to the event loop, one per period, whether or not the
// fetch started by the previous tick has finished. TriggerNow posts one extra
// tick without touching the period, so a manual refresh never shifts the
// regular cadence.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sms-viewer/clock"
	smserrors "sms-viewer/errors"
	"sms-viewer/eventloop"
)

type Scheduler struct {
	clock      clock.Clock
	dispatcher eventloop.Dispatcher
	log        *slog.Logger

	mu      sync.Mutex
	onTick  func()
	stop    chan struct{}
	stopped chan struct{}
}

func New(clk clock.Clock, dispatcher eventloop.Dispatcher, log *slog.Logger) *Scheduler {
	return &Scheduler{
		clock:      clk,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Start begins ticking every interval until Stop. A scheduler starts once.
func (s *Scheduler) Start(interval time.Duration, onTick func()) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: interval must be positive, got %s", interval)
	}
	if onTick == nil {
		return fmt.Errorf("scheduler: onTick is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.onTick != nil {
		return smserrors.ErrAlreadyStarted
	}
	s.onTick = onTick
	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})

	// The ticker is created here, not in the goroutine, so that ticks are
	// anchored to the moment Start returns.
	ticker := s.clock.NewTicker(interval)
	go s.run(ticker, s.stop, s.stopped)

	s.log.Debug("scheduler started", "interval", interval)
	return nil
}

// TriggerNow posts one tick right away. It is a no-op outside Start..Stop.
func (s *Scheduler) TriggerNow() {
	s.mu.Lock()
	onTick, running := s.onTick, s.stop != nil
	s.mu.Unlock()

	if !running {
		return
	}
	s.dispatcher.Post(onTick)
}

// Stop halts the periodic ticks and waits for the ticking goroutine to exit.
// Ticks already posted to the loop still run.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, stopped := s.stop, s.stopped
	s.stop = nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-stopped
	s.log.Debug("scheduler stopped")
}

func (s *Scheduler) run(ticker *clock.Ticker, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.dispatcher.Post(s.onTick)
		}
	}
}
