// Package compare implements the comparison controller: two frame sources
// kept on one shared, clamped frame index.
package compare

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/user/vidcompare/pkg/playback"
	"github.com/user/vidcompare/pkg/ports"
)

var (
	// ErrControlsDisabled is returned by playback commands while fewer than two videos are loaded.
	ErrControlsDisabled = errors.New("compare: controls are disabled until both videos are loaded")

	// ErrInvalidSlot is returned for a slot other than 1 or 2.
	ErrInvalidSlot = errors.New("compare: invalid slot")

	// ErrInvalidSize is returned when a panel is resized to a non-positive size.
	ErrInvalidSize = errors.New("compare: invalid panel size")
)

// Phase is the controller's load state.
type Phase int

const (
	NoVideos Phase = iota
	OneVideoLoaded
	BothVideosLoaded
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case NoVideos:
		return "no-videos"
	case OneVideoLoaded:
		return "one-video"
	case BothVideosLoaded:
		return "both-videos"
	default:
		return "unknown"
	}
}

// Mode selects how the two videos are presented.
type Mode int

const (
	// ModeSideBySide shows each video in its own panel.
	ModeSideBySide Mode = iota
	// ModeOverlay draws video 1 over video 2 with a vertical divider.
	ModeOverlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	if m == ModeOverlay {
		return "overlay"
	}
	return "side"
}

// ParseMode parses "side" or "overlay". Unknown values yield ModeSideBySide.
func ParseMode(s string) Mode {
	if s == "overlay" {
		return ModeOverlay
	}
	return ModeSideBySide
}

// Options configures a Controller.
type Options struct {
	PanelWidth  int
	PanelHeight int
	Loop        bool
	Mode        Mode
	// Divider is the overlay split as a fraction of the fitted frame width.
	Divider float64
	// PlayingQuality is used while Playing, PausedQuality otherwise.
	PlayingQuality ports.ScaleQuality
	PausedQuality  ports.ScaleQuality
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		PanelWidth:     640,
		PanelHeight:    360,
		Mode:           ModeSideBySide,
		Divider:        0.5,
		PlayingQuality: ports.ScaleFast,
		PausedQuality:  ports.ScaleSmooth,
	}
}

type panel struct {
	source ports.FrameSource
	info   ports.VideoInfo
	width  int
	height int

	// last decoded frame, reused for resizes and re-renders
	raw      image.Image
	rawIndex int
}

func (p *panel) loaded() bool { return p.source != nil }

// Controller owns both frame sources and the playback clock. All mutation
// goes through its methods, which must be called from a single goroutine.
type Controller struct {
	opener   ports.SourceOpener
	renderer ports.Renderer
	display  ports.Display
	timer    ports.Timer
	log      ports.Logger

	clock   *playback.Clock
	panels  [2]panel
	mode    Mode
	divider float64
	opts    Options
}

// New creates a Controller in the NoVideos phase.
func New(
	opener ports.SourceOpener,
	renderer ports.Renderer,
	display ports.Display,
	timer ports.Timer,
	log ports.Logger,
	opts Options,
) *Controller {
	if opts.PanelWidth <= 0 || opts.PanelHeight <= 0 {
		def := DefaultOptions()
		opts.PanelWidth, opts.PanelHeight = def.PanelWidth, def.PanelHeight
	}
	c := &Controller{
		opener:   opener,
		renderer: renderer,
		display:  display,
		timer:    timer,
		log:      log.WithComponent("controller"),
		clock:    playback.New(),
		mode:     opts.Mode,
		divider:  clampUnit(opts.Divider),
		opts:     opts,
	}
	c.clock.SetLoop(opts.Loop)
	for i := range c.panels {
		c.panels[i].width = opts.PanelWidth
		c.panels[i].height = opts.PanelHeight
		c.panels[i].rawIndex = -1
	}
	c.display.SetControlsEnabled(false)
	c.display.ShowTime(EmptyTimeText)
	return c
}

// Phase returns the current load state.
func (c *Controller) Phase() Phase {
	n := 0
	for i := range c.panels {
		if c.panels[i].loaded() {
			n++
		}
	}
	return Phase(n)
}

// Position returns the shared frame index.
func (c *Controller) Position() int { return c.clock.Position() }

// UpperBound returns the last valid shared frame index.
func (c *Controller) UpperBound() int { return c.clock.UpperBound() }

// State returns the playback state.
func (c *Controller) State() playback.State { return c.clock.State() }

// Loop reports whether playback wraps at the upper bound.
func (c *Controller) Loop() bool { return c.clock.Loop() }

// Mode returns the presentation mode.
func (c *Controller) Mode() Mode { return c.mode }

// Divider returns the overlay split fraction.
func (c *Controller) Divider() float64 { return c.divider }

// Info returns the metadata of the video in slot, if one is loaded.
func (c *Controller) Info(slot ports.Slot) (ports.VideoInfo, bool) {
	if !slot.Valid() || !c.panels[slot.Index()].loaded() {
		return ports.VideoInfo{}, false
	}
	return c.panels[slot.Index()].info, true
}

// TimeText returns the current time display string.
func (c *Controller) TimeText() string {
	if c.Phase() != BothVideosLoaded {
		return EmptyTimeText
	}
	return TimeText(c.clock.Position(), c.clock.UpperBound(), c.panels[0].info.FrameRate)
}

// LoadVideo opens path and installs it in slot, closing the previous video
// of that slot. On failure nothing changes and the error wraps ports.ErrUnreadableFile.
func (c *Controller) LoadVideo(slot ports.Slot, path string) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	src, err := c.openSource(path)
	if err != nil {
		c.log.Warn("Failed to load %s: %v", path, err)
		c.display.ReportError(err)
		c.flush()
		return err
	}

	p := &c.panels[slot.Index()]
	if p.loaded() {
		if err := p.source.Close(); err != nil {
			c.log.Warn("Failed to release %s: %v", p.info.Path, err)
		}
	}
	p.source = src
	p.info = src.Info()
	p.raw = nil
	p.rawIndex = -1

	c.log.Info("Loaded %s into slot %d (%d frames, %.2f fps)", p.info.Path, int(slot), p.info.FrameCount, p.info.FrameRate)
	c.display.ShowInfo(slot, InfoText(p.info))

	if c.Phase() != BothVideosLoaded {
		c.display.SetControlsEnabled(false)
		c.showFirstFrame(slot)
		c.flush()
		return nil
	}

	c.timer.Stop()
	c.clock.SetUpperBound(c.sharedFrameCount() - 1)
	c.log.Debug("Shared range is 0..%d", c.clock.UpperBound())
	if a, b := c.panels[0].info.FrameRate, c.panels[1].info.FrameRate; math.Abs(a-b) > 0.01 {
		c.log.Warn("Frame rates differ (%.2f vs %.2f); timing follows video 1", a, b)
	}
	c.display.SetControlsEnabled(true)
	c.render()
	return nil
}

func (c *Controller) openSource(path string) (ports.FrameSource, error) {
	src, err := c.opener.Open(path)
	if err != nil {
		if !errors.Is(err, ports.ErrUnreadableFile) {
			err = fmt.Errorf("%w: %s: %v", ports.ErrUnreadableFile, path, err)
		}
		return nil, err
	}
	if err := src.Info().Validate(); err != nil {
		src.Close()
		return nil, err
	}
	return src, nil
}

func (c *Controller) sharedFrameCount() int {
	a, b := c.panels[0].info.FrameCount, c.panels[1].info.FrameCount
	if a < b {
		return a
	}
	return b
}

// Seek stops playback and moves both videos to the clamped index.
func (c *Controller) Seek(index int) error {
	if c.Phase() != BothVideosLoaded {
		return ErrControlsDisabled
	}
	if c.clock.Playing() {
		c.timer.Stop()
		c.log.Debug("Playback interrupted by seek")
	}
	c.clock.Seek(index)
	c.render()
	return nil
}

// Step seeks relative to the current position.
func (c *Controller) Step(delta int) error {
	pos := c.clock.Position()
	target := pos + delta
	// saturate instead of overflowing; Seek clamps the rest
	if delta > 0 && target < pos {
		target = math.MaxInt
	} else if delta < 0 && target > pos {
		target = math.MinInt
	}
	return c.Seek(target)
}

// TogglePlayback flips between Playing and Stopped. Playing ticks at
// 1000/fps ms using video 1's frame rate.
func (c *Controller) TogglePlayback() error {
	if c.Phase() != BothVideosLoaded {
		return ErrControlsDisabled
	}
	if c.clock.Toggle() == playback.Playing {
		interval := playback.TickInterval(c.panels[0].info.FrameRate)
		c.timer.Start(interval)
		c.log.Debug("Playback started at frame %d (tick %v)", c.clock.Position(), interval)
		return nil
	}
	c.timer.Stop()
	c.log.Debug("Playback paused at frame %d", c.clock.Position())
	// repaint the paused frame at paused quality
	c.render()
	return nil
}

// OnTick advances playback by one frame. Ticks arriving while stopped are ignored.
func (c *Controller) OnTick() {
	if !c.clock.Playing() || c.Phase() != BothVideosLoaded {
		return
	}
	moved := c.clock.Advance()
	if !c.clock.Playing() {
		c.timer.Stop()
		c.log.Debug("Playback reached frame %d and stopped", c.clock.Position())
	}
	if moved || !c.clock.Playing() {
		c.render()
	}
}

// ToggleLoop enables or disables wraparound at the upper bound.
func (c *Controller) ToggleLoop() error {
	if c.Phase() != BothVideosLoaded {
		return ErrControlsDisabled
	}
	c.clock.SetLoop(!c.clock.Loop())
	c.log.Debug("Loop %v", c.clock.Loop())
	return nil
}

// ToggleMode switches between side-by-side and overlay presentation.
func (c *Controller) ToggleMode() error {
	if c.Phase() != BothVideosLoaded {
		return ErrControlsDisabled
	}
	if c.mode == ModeOverlay {
		c.mode = ModeSideBySide
	} else {
		c.mode = ModeOverlay
	}
	c.log.Debug("Switched to %s mode", c.mode)
	c.render()
	return nil
}

// SetDivider moves the overlay divider, clamped to [0, 1].
func (c *Controller) SetDivider(fraction float64) {
	c.divider = clampUnit(fraction)
	if c.mode == ModeOverlay && c.Phase() == BothVideosLoaded {
		c.render()
	}
}

// Resize changes a panel's size and re-renders its current frame without
// moving the shared position.
func (c *Controller) Resize(slot ports.Slot, width, height int) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	p := &c.panels[slot.Index()]
	p.width, p.height = width, height

	switch {
	case c.Phase() == BothVideosLoaded:
		c.render()
	case p.loaded():
		c.showFirstFrame(slot)
		c.flush()
	}
	return nil
}

// Close stops the timer and releases both videos. It is safe to call twice.
func (c *Controller) Close() error {
	c.timer.Stop()
	c.clock.Stop()
	var errs []error
	for i := range c.panels {
		p := &c.panels[i]
		if !p.loaded() {
			continue
		}
		if err := p.source.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", p.info.Path, err))
		}
		*p = panel{width: p.width, height: p.height, rawIndex: -1}
	}
	return errors.Join(errs...)
}

// frame returns the decoded frame at index for panel i, reusing the last
// decoded frame when the index has not changed.
func (c *Controller) frame(i, index int) (image.Image, bool) {
	p := &c.panels[i]
	if p.raw != nil && p.rawIndex == index {
		return p.raw, true
	}
	img, err := p.source.FrameAt(index)
	if err != nil {
		c.log.Warn("Failed to decode frame %d of %s: %v", index, p.info.Path, err)
		return nil, false
	}
	p.raw = img
	p.rawIndex = index
	return img, true
}

func (c *Controller) quality() ports.ScaleQuality {
	if c.clock.Playing() {
		return c.opts.PlayingQuality
	}
	return c.opts.PausedQuality
}

// render fetches both frames at the shared position, fits them and updates
// the time display.
func (c *Controller) render() {
	pos := c.clock.Position()
	q := c.quality()

	if c.mode == ModeOverlay {
		top, okTop := c.frame(0, pos)
		bottom, okBottom := c.frame(1, pos)
		if okTop && okBottom {
			p := c.panels[0]
			c.display.ShowOverlay(c.renderer.Overlay(top, bottom, p.width, p.height, c.divider, q))
		}
	} else {
		for i := range c.panels {
			img, ok := c.frame(i, pos)
			if !ok {
				continue
			}
			p := c.panels[i]
			c.display.ShowFrame(ports.Slot(i+1), c.renderer.Fit(img, p.width, p.height, q))
		}
	}

	c.display.ShowTime(c.TimeText())
	c.flush()
}

// showFirstFrame previews a lone video at frame 0.
func (c *Controller) showFirstFrame(slot ports.Slot) {
	i := slot.Index()
	img, ok := c.frame(i, 0)
	if !ok {
		return
	}
	p := c.panels[i]
	c.display.ShowFrame(slot, c.renderer.Fit(img, p.width, p.height, c.opts.PausedQuality))
}

func (c *Controller) flush() {
	if err := c.display.Flush(); err != nil {
		c.log.Warn("Failed to update display: %v", err)
	}
}

func clampUnit(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
