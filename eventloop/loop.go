// Package eventloop provides the single logical thread of the viewer.
//
// Timer ticks, request completions and user actions are all posted to one
// Loop and run one after another on the goroutine that called Run. Display
// state touched only from posted tasks needs no locking.
package eventloop

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher schedules a task on the event thread.
type Dispatcher interface {
	Post(task func())
}

// Inline runs tasks immediately on the posting goroutine.
type Inline struct{}

func (Inline) Post(task func()) { task() }

// Loop is an unbounded FIFO of tasks. Post never blocks, so a task may post
// further tasks without deadlocking the loop.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
	log   *slog.Logger
}

func New(log *slog.Logger) *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		log:  log,
	}
}

func (l *Loop) Post(task func()) {
	l.mu.Lock()
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes tasks until ctx is done. Only one goroutine may run the loop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Drain runs every task queued so far, plus any they post, and reports how
// many ran. Tests call it in place of Run to step the loop by hand.
func (l *Loop) Drain() int {
	ran := 0
	for {
		l.mu.Lock()
		tasks := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(tasks) == 0 {
			return ran
		}
		for _, task := range tasks {
			l.run(task)
			ran++
		}
	}
}

// Pending reports how many tasks are waiting.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("event loop task panicked", "panic", r)
		}
	}()
	task()
}
