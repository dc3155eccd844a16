package mocks

import (
	"sync"

	"github.com/user/vidcompare/pkg/ports"
)

// PreferenceStore is an in-memory ports.PreferenceStore.
type PreferenceStore struct {
	mu sync.Mutex

	Prefs        ports.Preferences
	LoadErr      error
	RememberFunc func(slot ports.Slot, path string) error

	// Recorded calls for verification
	Remembered []string
}

func (m *PreferenceStore) Load() (ports.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Prefs, m.LoadErr
}

func (m *PreferenceStore) Remember(slot ports.Slot, path string) error {
	if m.RememberFunc != nil {
		if err := m.RememberFunc(slot, path); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prefs = m.Prefs.WithPath(slot, path)
	m.Remembered = append(m.Remembered, path)
	return nil
}

var _ ports.PreferenceStore = (*PreferenceStore)(nil)
