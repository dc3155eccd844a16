package mocks

import (
	"sync"
	"time"

	"github.com/user/vidcompare/pkg/ports"
)

// Timer is a manually driven ports.Timer. Tests deliver ticks with Tick.
type Timer struct {
	mu sync.Mutex

	ch      chan time.Time
	running bool

	// Recorded calls for verification
	Starts []time.Duration
	Stops  int
}

// NewTimer creates a stopped Timer.
func NewTimer() *Timer {
	return &Timer{ch: make(chan time.Time, 16)}
}

func (m *Timer) Start(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	m.Starts = append(m.Starts, interval)
}

func (m *Timer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.Stops++
}

func (m *Timer) C() <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	return m.ch
}

// Running reports whether the timer has been started and not stopped.
func (m *Timer) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Tick queues one tick. It reports false if the timer is stopped.
func (m *Timer) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return false
	}
	m.ch <- time.Now()
	return true
}

var _ ports.Timer = (*Timer)(nil)
