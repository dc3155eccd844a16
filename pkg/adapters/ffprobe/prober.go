// Package ffprobe reads video metadata by running the ffprobe executable.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/user/vidcompare/pkg/ports"
)

// DefaultTimeout bounds a single ffprobe invocation.
const DefaultTimeout = 30 * time.Second

// Prober implements ports.Prober with ffprobe.
type Prober struct {
	bin     string
	timeout time.Duration
}

// New creates a Prober that runs the ffprobe binary at bin.
func New(bin string) *Prober {
	return &Prober{bin: bin, timeout: DefaultTimeout}
}

// WithTimeout returns a copy of the prober using the given timeout.
func (p *Prober) WithTimeout(d time.Duration) *Prober {
	cp := *p
	cp.timeout = d
	return &cp
}

type probeOutput struct {
	Streams []stream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type stream struct {
	CodecName     string `json:"codec_name"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	RFrameRate    string `json:"r_frame_rate"`
	AvgFrameRate  string `json:"avg_frame_rate"`
	NbFrames      string `json:"nb_frames"`
	NbReadPackets string `json:"nb_read_packets"`
	Duration      string `json:"duration"`
}

// Probe reads the first video stream of path.
func (p *Prober) Probe(path string) (ports.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	out, err := p.run(ctx, path, false)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: %s: %v", ports.ErrUnreadableFile, path, err)
	}
	info, err := ParseOutput(out)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: %s: %v", ports.ErrUnreadableFile, path, err)
	}

	// containers without a frame count in the header need a packet scan
	if info.FrameCount <= 0 {
		if counted, err := p.run(ctx, path, true); err == nil {
			if ci, err := ParseOutput(counted); err == nil && ci.FrameCount > 0 {
				info.FrameCount = ci.FrameCount
			}
		}
	}

	info.Path = path
	return info, nil
}

func (p *Prober) run(ctx context.Context, path string, countPackets bool) ([]byte, error) {
	args := []string{"-v", "error", "-select_streams", "v:0"}
	entries := "stream=codec_name,width,height,r_frame_rate,avg_frame_rate,nb_frames,duration:format=duration"
	if countPackets {
		args = append(args, "-count_packets")
		entries = "stream=codec_name,width,height,r_frame_rate,avg_frame_rate,nb_read_packets,duration:format=duration"
	}
	args = append(args, "-show_entries", entries, "-of", "json", path)

	cmd := exec.CommandContext(ctx, p.bin, args...)
	output, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("ffprobe: %w", err)
	}
	return output, nil
}

// ParseOutput converts ffprobe JSON output to VideoInfo. When the stream
// carries no frame count, it is estimated from duration and frame rate.
func ParseOutput(data []byte) (ports.VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return ports.VideoInfo{}, fmt.Errorf("no video stream found")
	}
	s := out.Streams[0]

	info := ports.VideoInfo{
		Codec:  s.CodecName,
		Width:  s.Width,
		Height: s.Height,
	}

	info.FrameRate = ParseRational(s.AvgFrameRate)
	if info.FrameRate <= 0 {
		info.FrameRate = ParseRational(s.RFrameRate)
	}

	if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
		info.FrameCount = n
	} else if n, err := strconv.Atoi(s.NbReadPackets); err == nil && n > 0 {
		info.FrameCount = n
	} else if info.FrameRate > 0 {
		dur := parseSeconds(s.Duration)
		if dur <= 0 {
			dur = parseSeconds(out.Format.Duration)
		}
		info.FrameCount = int(math.Round(dur * info.FrameRate))
	}

	return info, nil
}

// ParseRational parses "num/den" or a plain decimal. It returns 0 for
// malformed input or a zero denominator.
func ParseRational(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return 0
		}
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 || n < 0 {
		return 0
	}
	return n / d
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
