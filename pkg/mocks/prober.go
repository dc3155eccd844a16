package mocks

import (
	"fmt"

	"github.com/user/vidcompare/pkg/ports"
)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	ProbeFunc func(path string) (ports.VideoInfo, error)
	Infos     map[string]ports.VideoInfo

	// Recorded calls for verification
	Probed []string
}

// NewProber creates a mock prober that knows the given videos.
func NewProber(infos ...ports.VideoInfo) *Prober {
	m := &Prober{Infos: make(map[string]ports.VideoInfo)}
	for _, info := range infos {
		m.Infos[info.Path] = info
	}
	return m
}

func (m *Prober) Probe(path string) (ports.VideoInfo, error) {
	m.Probed = append(m.Probed, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	info, ok := m.Infos[path]
	if !ok {
		return ports.VideoInfo{}, fmt.Errorf("%w: %s", ports.ErrUnreadableFile, path)
	}
	return info, nil
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
