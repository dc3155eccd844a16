package ffmpegsource

import (
	"errors"
	"fmt"
	"os"

	"github.com/user/vidcompare/pkg/ports"
)

// Opener implements ports.SourceOpener. Metadata comes from the first
// prober that returns a valid VideoInfo; frames come from ffmpeg.
type Opener struct {
	bin     string
	probers []ports.Prober
	log     ports.Logger
	maxSkip int
}

// NewOpener creates an Opener that decodes with the ffmpeg binary at bin and
// asks probers in order for metadata.
func NewOpener(bin string, log ports.Logger, probers ...ports.Prober) *Opener {
	return &Opener{
		bin:     bin,
		probers: probers,
		log:     log.WithComponent("source"),
		maxSkip: DefaultMaxSkip,
	}
}

// SetMaxSkip sets the forward jump served without restarting ffmpeg.
func (o *Opener) SetMaxSkip(n int) {
	if n < 0 {
		n = 0
	}
	o.maxSkip = n
}

// Open probes path and returns a Source positioned before frame 0.
func (o *Opener) Open(path string) (ports.FrameSource, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrUnreadableFile, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ports.ErrUnreadableFile, path)
	}

	info, err := o.probe(path)
	if err != nil {
		return nil, err
	}

	o.log.Debug("Opened %s: %d frames, %.2f fps, %dx%d %s",
		path, info.FrameCount, info.FrameRate, info.Width, info.Height, info.Codec)
	return newSource(o.bin, info, o.maxSkip), nil
}

func (o *Opener) probe(path string) (ports.VideoInfo, error) {
	if len(o.probers) == 0 {
		return ports.VideoInfo{}, fmt.Errorf("%w: no prober configured", ports.ErrUnreadableFile)
	}

	var errs []error
	for _, p := range o.probers {
		info, err := p.Probe(path)
		if err == nil {
			info.Path = path
			err = info.Validate()
		}
		if err == nil {
			return info, nil
		}
		o.log.Debug("Probe of %s with %T failed: %v", path, p, err)
		errs = append(errs, err)
	}

	joined := errors.Join(errs...)
	if errors.Is(joined, ports.ErrUnreadableFile) {
		return ports.VideoInfo{}, joined
	}
	return ports.VideoInfo{}, fmt.Errorf("%w: %v", ports.ErrUnreadableFile, joined)
}

// Ensure Opener implements ports.SourceOpener
var _ ports.SourceOpener = (*Opener)(nil)
