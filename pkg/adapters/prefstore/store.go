// Package prefstore persists the last loaded video paths as YAML.
package prefstore

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/user/vidcompare/pkg/ports"
)

// Store reads and writes ports.Preferences at a fixed path.
type Store struct {
	fs   ports.FileSystem
	path string
}

// New creates a Store for the file at path.
func New(fsys ports.FileSystem, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the preferences file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the preferences. A missing file yields empty preferences.
func (s *Store) Load() (ports.Preferences, error) {
	var prefs ports.Preferences
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return ports.Preferences{}, fmt.Errorf("parse preferences %s: %w", s.path, err)
	}
	return prefs, nil
}

// Save writes the preferences, replacing the file.
func (s *Store) Save(prefs ports.Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.fs.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// Remember records path for slot and saves.
func (s *Store) Remember(slot ports.Slot, path string) error {
	prefs, err := s.Load()
	if err != nil {
		// a corrupt file is replaced rather than blocking new loads
		prefs = ports.Preferences{}
	}
	return s.Save(prefs.WithPath(slot, path))
}

// Ensure Store implements ports.PreferenceStore
var _ ports.PreferenceStore = (*Store)(nil)
