package mocks

import (
	"image"
	"sync"

	"github.com/user/vidcompare/pkg/ports"
)

// Display is a mock implementation of ports.Display that records everything shown.
type Display struct {
	mu sync.Mutex

	FlushFunc func() error

	Frames          map[ports.Slot]image.Image
	FrameCalls      map[ports.Slot]int
	Overlay         image.Image
	OverlayCalls    int
	Time            string
	Times           []string
	InfoText        map[ports.Slot]string
	ControlsEnabled bool
	Errors          []error
	Flushes         int
}

// NewDisplay creates a new mock Display.
func NewDisplay() *Display {
	return &Display{
		Frames:     make(map[ports.Slot]image.Image),
		FrameCalls: make(map[ports.Slot]int),
		InfoText:   make(map[ports.Slot]string),
	}
}

func (m *Display) ShowFrame(slot ports.Slot, frame image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[slot] = frame
	m.FrameCalls[slot]++
}

func (m *Display) ShowOverlay(frame image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Overlay = frame
	m.OverlayCalls++
}

func (m *Display) ShowTime(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Time = text
	m.Times = append(m.Times, text)
}

func (m *Display) ShowInfo(slot ports.Slot, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InfoText[slot] = text
}

func (m *Display) SetControlsEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ControlsEnabled = enabled
}

func (m *Display) ReportError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, err)
}

func (m *Display) Flush() error {
	m.mu.Lock()
	m.Flushes++
	m.mu.Unlock()
	if m.FlushFunc != nil {
		return m.FlushFunc()
	}
	return nil
}

// TimeText returns the last time string shown.
func (m *Display) TimeText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Time
}

var _ ports.Display = (*Display)(nil)
