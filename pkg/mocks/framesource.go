package mocks

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/user/vidcompare/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource.
// Without FrameAtFunc it returns solid frames whose red channel encodes index%256.
type FrameSource struct {
	mu sync.Mutex

	VideoInfo   ports.VideoInfo
	FrameAtFunc func(index int) (image.Image, error)
	CloseErr    error

	// Recorded calls for verification
	Reads      []int
	CloseCalls int
	Releases   int
	closed     bool
}

// NewFrameSource creates a mock source with the given frame count and rate at 64x36.
func NewFrameSource(path string, frames int, fps float64) *FrameSource {
	return &FrameSource{
		VideoInfo: ports.VideoInfo{
			Path:       path,
			FrameCount: frames,
			FrameRate:  fps,
			Width:      64,
			Height:     36,
			Codec:      "mock",
		},
	}
}

func (m *FrameSource) Info() ports.VideoInfo {
	return m.VideoInfo
}

func (m *FrameSource) FrameAt(index int) (image.Image, error) {
	m.mu.Lock()
	m.Reads = append(m.Reads, index)
	m.mu.Unlock()

	if index < 0 || index >= m.VideoInfo.FrameCount {
		return nil, fmt.Errorf("%w: %d", ports.ErrOutOfRange, index)
	}
	if m.FrameAtFunc != nil {
		return m.FrameAtFunc(index)
	}
	img := image.NewRGBA(image.Rect(0, 0, m.VideoInfo.Width, m.VideoInfo.Height))
	c := color.RGBA{R: uint8(index % 256), A: 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = c.R, c.A
	}
	return img, nil
}

func (m *FrameSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	if m.closed {
		return nil
	}
	m.closed = true
	m.Releases++
	return m.CloseErr
}

// Closed reports whether Close has been called.
func (m *FrameSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// ReadCount returns the number of FrameAt calls.
func (m *FrameSource) ReadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reads)
}

var _ ports.FrameSource = (*FrameSource)(nil)

// Opener is a mock implementation of ports.SourceOpener backed by a map of sources.
type Opener struct {
	Sources  map[string]*FrameSource
	OpenFunc func(path string) (ports.FrameSource, error)

	Opened []string
}

// NewOpener creates an Opener serving the given sources by path.
func NewOpener(sources ...*FrameSource) *Opener {
	o := &Opener{Sources: make(map[string]*FrameSource)}
	for _, s := range sources {
		o.Sources[s.VideoInfo.Path] = s
	}
	return o
}

func (m *Opener) Open(path string) (ports.FrameSource, error) {
	m.Opened = append(m.Opened, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if s, ok := m.Sources[path]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s: no such file", ports.ErrUnreadableFile, path)
}

var _ ports.SourceOpener = (*Opener)(nil)
