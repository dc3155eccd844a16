package ports

// Preferences holds the last successfully loaded path for each slot.
type Preferences struct {
	Video1 string `yaml:"video1,omitempty"`
	Video2 string `yaml:"video2,omitempty"`
}

// Path returns the stored path for slot.
func (p Preferences) Path(slot Slot) string {
	switch slot {
	case SlotLeft:
		return p.Video1
	case SlotRight:
		return p.Video2
	}
	return ""
}

// WithPath returns a copy with slot's path replaced.
func (p Preferences) WithPath(slot Slot, path string) Preferences {
	switch slot {
	case SlotLeft:
		p.Video1 = path
	case SlotRight:
		p.Video2 = path
	}
	return p
}

// PreferenceStore persists Preferences between sessions.
type PreferenceStore interface {
	// Load returns the stored preferences. A missing store yields empty preferences.
	Load() (Preferences, error)

	// Remember records path as the last video loaded into slot.
	Remember(slot Slot, path string) error
}
