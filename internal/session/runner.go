package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const eventBuffer = 64

// Runner is a single-threaded event loop. Everything posted to it, including
// timer callbacks scheduled through After, runs on the goroutine that called
// Run, one at a time.
type Runner struct {
	events chan func()
	stopCh chan struct{}
	once   sync.Once

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

// NewRunner creates an idle runner. Call Run to start processing.
func NewRunner() *Runner {
	return &Runner{
		events: make(chan func(), eventBuffer),
		stopCh: make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// Run processes events until ctx is done or Stop is called.
func (r *Runner) Run(ctx context.Context) {
	defer r.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case fn := <-r.events:
			select {
			case <-r.stopCh:
				return
			default:
			}
			fn()
		}
	}
}

// Post queues fn for the loop. It reports false once the runner is stopped.
func (r *Runner) Post(fn func()) bool {
	select {
	case <-r.stopCh:
		return false
	default:
	}
	select {
	case r.events <- fn:
		return true
	case <-r.stopCh:
		return false
	}
}

// Call runs fn on the loop and waits for it to finish. It reports false if
// the runner stopped first.
func (r *Runner) Call(fn func()) bool {
	done := make(chan struct{})
	if !r.Post(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-r.stopCh:
		return false
	}
}

// After implements Scheduler. fn is posted to the loop once d has elapsed,
// unless the returned cancel function is called first.
func (r *Runner) After(d time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	var t *time.Timer

	r.mu.Lock()
	t = time.AfterFunc(d, func() {
		// t is assigned under mu, so read it under mu as well.
		r.mu.Lock()
		delete(r.timers, t)
		r.mu.Unlock()

		r.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	r.timers[t] = struct{}{}
	r.mu.Unlock()

	return func() {
		cancelled.Store(true)
		t.Stop()
		r.forget(t)
	}
}

func (r *Runner) forget(t *time.Timer) {
	r.mu.Lock()
	delete(r.timers, t)
	r.mu.Unlock()
}

// Stop ends the loop and stops every pending timer. Safe to call twice.
func (r *Runner) Stop() {
	r.once.Do(func() {
		close(r.stopCh)

		r.mu.Lock()
		for t := range r.timers {
			t.Stop()
		}
		r.timers = make(map[*time.Timer]struct{})
		r.mu.Unlock()
	})
}

// Done is closed once the runner has stopped.
func (r *Runner) Done() <-chan struct{} {
	return r.stopCh
}
