package ports

import "image"

// Slot identifies one of the two comparison panels.
type Slot int

const (
	// SlotLeft is the first video (its frame rate drives playback timing).
	SlotLeft Slot = 1
	// SlotRight is the second video.
	SlotRight Slot = 2
)

// Valid reports whether s names one of the two panels.
func (s Slot) Valid() bool {
	return s == SlotLeft || s == SlotRight
}

// Index returns the zero-based array index of the slot.
func (s Slot) Index() int {
	return int(s) - 1
}

// Display is the windowing collaborator that presents controller output.
// The controller calls Flush once after each complete update.
type Display interface {
	// ShowFrame presents an already fitted frame in the slot's panel.
	ShowFrame(slot Slot, frame image.Image)

	// ShowOverlay presents the composed overlay view (both videos in one panel).
	ShowOverlay(frame image.Image)

	// ShowTime sets the read-only time display ("mm:ss / mm:ss").
	ShowTime(text string)

	// ShowInfo sets the per-slot information label.
	ShowInfo(slot Slot, text string)

	// SetControlsEnabled enables or disables play/pause, loop, mode and seek controls.
	SetControlsEnabled(enabled bool)

	// ReportError tells the user a command failed. It is never fatal.
	ReportError(err error)

	// Flush commits the pending update.
	Flush() error
}
