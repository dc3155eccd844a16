// Package ffmpegsource decodes video frames by streaming raw RGBA output
// from an ffmpeg subprocess.
package ffmpegsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/vidcompare/pkg/ports"
)

// DefaultMaxSkip is the largest forward jump served by reading and
// discarding frames instead of restarting ffmpeg at the target time.
const DefaultMaxSkip = 48

var errClosed = errors.New("frame source is closed")

// Source implements ports.FrameSource over a sequential ffmpeg stream.
// Reading frame n+1 after frame n costs one frame of decoding; any other
// access pattern may restart the decoder.
type Source struct {
	info    ports.VideoInfo
	bin     string
	maxSkip int

	mu      sync.Mutex
	closed  bool
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	stdout  io.ReadCloser
	reader  *bufio.Reader
	stderr  bytes.Buffer
	next    int // index of the next frame the stream will produce
	scratch []byte

	last      *image.RGBA
	lastIndex int
}

func newSource(bin string, info ports.VideoInfo, maxSkip int) *Source {
	return &Source{
		info:      info,
		bin:       bin,
		maxSkip:   maxSkip,
		lastIndex: -1,
	}
}

// Info returns the metadata captured at open.
func (s *Source) Info() ports.VideoInfo {
	return s.info
}

func (s *Source) frameBytes() int {
	return s.info.Width * s.info.Height * 4
}

// FrameAt returns the frame at index. The returned image is never reused
// by the source.
func (s *Source) FrameAt(index int) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errClosed
	}
	if index < 0 || index >= s.info.FrameCount {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ports.ErrOutOfRange, index, s.info.FrameCount)
	}
	if index == s.lastIndex && s.last != nil {
		return s.last, nil
	}

	if s.reader == nil || index < s.next || index-s.next > s.maxSkip {
		if err := s.restart(index); err != nil {
			return nil, err
		}
	}

	for s.next < index {
		if err := s.discard(); err != nil {
			return nil, s.streamError(index, err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	if _, err := io.ReadFull(s.reader, img.Pix); err != nil {
		return nil, s.streamError(index, err)
	}
	s.next++
	s.last = img
	s.lastIndex = index
	return img, nil
}

func (s *Source) discard() error {
	if s.scratch == nil {
		s.scratch = make([]byte, s.frameBytes())
	}
	if _, err := io.ReadFull(s.reader, s.scratch); err != nil {
		return err
	}
	s.next++
	return nil
}

// streamError tears down a stream that ended or failed, so the next read
// starts over.
func (s *Source) streamError(index int, err error) error {
	// stop waits for ffmpeg, so stderr is complete afterwards
	s.stop()
	stderr := bytes.TrimSpace(s.stderr.Bytes())
	if len(stderr) > 0 {
		return fmt.Errorf("decode frame %d of %s: %w: %s", index, s.info.Path, err, stderr)
	}
	return fmt.Errorf("decode frame %d of %s: %w", index, s.info.Path, err)
}

// Args returns the ffmpeg arguments that stream frames starting at index.
func Args(info ports.VideoInfo, index int) []string {
	args := []string{"-hide_banner", "-nostdin", "-v", "error"}
	if index > 0 {
		seconds := float64(index) / info.FrameRate
		args = append(args, "-ss", strconv.FormatFloat(seconds, 'f', 6, 64))
	}
	args = append(args,
		"-i", info.Path,
		"-map", "0:v:0",
		"-an", "-sn",
		"-vsync", "passthrough",
		"-s", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	)
	return args
}

func (s *Source) restart(index int) error {
	s.stop()

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, s.bin, Args(s.info, index)...)
	s.stderr.Reset()
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.cancel = cancel
	s.stdout = stdout
	s.reader = bufio.NewReaderSize(stdout, s.frameBytes())
	s.next = index
	return nil
}

// stop kills the running ffmpeg process, if any, and waits for it.
func (s *Source) stop() {
	if s.cmd == nil {
		return
	}
	s.cancel()
	_ = s.stdout.Close()
	_ = s.cmd.Wait()
	s.cmd = nil
	s.cancel = nil
	s.stdout = nil
	s.reader = nil
}

// Close stops the decoder and drops cached frames. It is safe to call twice.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stop()
	s.last = nil
	s.scratch = nil
	return nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
