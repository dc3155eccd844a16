package ports

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrUnreadableFile is returned when a video cannot be opened: the file is
	// missing, the codec is unsupported or the container is corrupt.
	ErrUnreadableFile = errors.New("unreadable video file")

	// ErrOutOfRange is returned by FrameSource.FrameAt for an index outside
	// [0, FrameCount). Callers clamp before reading, so it never reaches users.
	ErrOutOfRange = errors.New("frame index out of range")
)

// VideoInfo describes one opened video. It is immutable once the source is open.
type VideoInfo struct {
	Path       string
	FrameCount int
	FrameRate  float64 // frames per second, always > 0
	Width      int
	Height     int
	Codec      string
}

// Duration returns the video length in seconds (FrameCount / FrameRate).
func (v VideoInfo) Duration() float64 {
	if v.FrameRate <= 0 {
		return 0
	}
	return float64(v.FrameCount) / v.FrameRate
}

// Validate checks the invariants every opened video must satisfy.
func (v VideoInfo) Validate() error {
	switch {
	case v.FrameCount <= 0:
		return fmt.Errorf("%w: %s has no frames", ErrUnreadableFile, v.Path)
	case v.FrameRate <= 0:
		return fmt.Errorf("%w: %s has invalid frame rate %v", ErrUnreadableFile, v.Path, v.FrameRate)
	case v.Width <= 0 || v.Height <= 0:
		return fmt.Errorf("%w: %s has invalid dimensions %dx%d", ErrUnreadableFile, v.Path, v.Width, v.Height)
	}
	return nil
}

// FrameSource provides random access to the decoded frames of one video.
type FrameSource interface {
	// Info returns the metadata captured when the source was opened.
	Info() VideoInfo

	// FrameAt decodes the frame at the zero-based index.
	// It moves the source's read cursor: sequential reads are cheap,
	// random reads may restart the decoder.
	FrameAt(index int) (image.Image, error)

	// Close releases decoder resources. Calling it more than once is harmless.
	Close() error
}

// SourceOpener opens FrameSources from file paths.
type SourceOpener interface {
	// Open opens the video at path. Failures wrap ErrUnreadableFile.
	Open(path string) (FrameSource, error)
}

// Prober reads video metadata without decoding frames.
type Prober interface {
	Probe(path string) (VideoInfo, error)
}
