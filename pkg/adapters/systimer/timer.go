// Package systimer provides a ports.Timer backed by time.Ticker.
package systimer

import (
	"sync"
	"time"

	"github.com/user/vidcompare/pkg/ports"
)

// Timer implements ports.Timer. C returns nil while stopped, so a select on
// it blocks forever instead of delivering stale ticks.
type Timer struct {
	mu     sync.Mutex
	ticker *time.Ticker
}

// New creates a stopped Timer.
func New() *Timer {
	return &Timer{}
}

// Start (re)starts ticking. Non-positive intervals are raised to 1ms.
func (t *Timer) Start(interval time.Duration) {
	if interval <= 0 {
		interval = time.Millisecond
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticker != nil {
		t.ticker.Reset(interval)
		drain(t.ticker.C)
		return
	}
	t.ticker = time.NewTicker(interval)
}

// Stop stops ticking and discards a pending tick.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	drain(t.ticker.C)
	t.ticker = nil
}

// C returns the tick channel, or nil while stopped.
func (t *Timer) C() <-chan time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Running reports whether the timer is started.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

func drain(c <-chan time.Time) {
	select {
	case <-c:
	default:
	}
}

// Ensure Timer implements ports.Timer
var _ ports.Timer = (*Timer)(nil)
