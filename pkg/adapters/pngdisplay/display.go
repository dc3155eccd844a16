// Package pngdisplay provides a headless ports.Display that composes each
// update into one image and writes it as a numbered PNG file.
package pngdisplay

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/vidcompare/pkg/ports"
)

const (
	headerHeight = 44
	footerHeight = 28
	margin       = 8
)

// Options configures the composed image.
type Options struct {
	// PanelWidth and PanelHeight are the minimum size of each panel.
	PanelWidth  int
	PanelHeight int
	Gap         int
	Background  color.Color
	TextColor   color.Color
	FontPath    string
	FontSize    float64
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		PanelWidth:  640,
		PanelHeight: 360,
		Gap:         8,
		Background:  color.RGBA{R: 32, G: 32, B: 32, A: 255},
		TextColor:   color.White,
		FontSize:    13,
	}
}

// Display keeps the latest state pushed by the controller and composes it on
// Flush. With an empty output directory nothing is written and only the
// latest composition is kept.
type Display struct {
	mu sync.Mutex

	renderer ports.Renderer
	fs       ports.FileSystem
	log      ports.Logger
	dir      string
	opts     Options

	frames   [2]image.Image
	overlay  image.Image
	overlaid bool
	time     string
	info     [2]string
	controls bool
	lastErr  error

	latest  image.Image
	written []string
}

// New creates a Display writing frame-%06d.png files into dir.
func New(dir string, fs ports.FileSystem, renderer ports.Renderer, log ports.Logger, opts Options) *Display {
	def := DefaultOptions()
	if opts.PanelWidth <= 0 || opts.PanelHeight <= 0 {
		opts.PanelWidth, opts.PanelHeight = def.PanelWidth, def.PanelHeight
	}
	if opts.Background == nil {
		opts.Background = def.Background
	}
	if opts.TextColor == nil {
		opts.TextColor = def.TextColor
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	return &Display{
		renderer: renderer,
		fs:       fs,
		log:      log.WithComponent("display"),
		dir:      dir,
		opts:     opts,
	}
}

func (d *Display) ShowFrame(slot ports.Slot, frame image.Image) {
	if !slot.Valid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames[slot.Index()] = frame
	d.overlaid = false
}

func (d *Display) ShowOverlay(frame image.Image) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay = frame
	d.overlaid = true
}

func (d *Display) ShowTime(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.time = text
}

func (d *Display) ShowInfo(slot ports.Slot, text string) {
	if !slot.Valid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.info[slot.Index()] = text
}

func (d *Display) SetControlsEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.controls = enabled
}

// ReportError logs the failure. The next composition is not affected.
func (d *Display) ReportError(err error) {
	d.mu.Lock()
	d.lastErr = err
	d.mu.Unlock()
	d.log.Warn("Command failed: %v", err)
}

// Flush composes the current state and writes it when an output directory
// is set. Nothing happens before the first frame arrives.
func (d *Display) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	img := d.compose()
	if img == nil {
		return nil
	}
	d.latest = img

	if d.dir == "" {
		return nil
	}
	data, err := d.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	path := filepath.Join(d.dir, fmt.Sprintf("frame-%06d.png", len(d.written)))
	if err := d.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	d.written = append(d.written, path)
	return nil
}

func (d *Display) compose() image.Image {
	if d.overlaid && d.overlay != nil {
		return d.composeOverlay()
	}
	if d.frames[0] == nil && d.frames[1] == nil {
		return nil
	}
	return d.composeSideBySide()
}

func (d *Display) panelSize(img image.Image) (int, int) {
	w, h := d.opts.PanelWidth, d.opts.PanelHeight
	if img != nil {
		b := img.Bounds()
		w = max(w, b.Dx())
		h = max(h, b.Dy())
	}
	return w, h
}

func (d *Display) composeSideBySide() image.Image {
	w1, h1 := d.panelSize(d.frames[0])
	w2, h2 := d.panelSize(d.frames[1])
	bodyH := max(h1, h2)
	width := w1 + d.opts.Gap + w2
	height := headerHeight + bodyH + footerHeight

	canvas := d.renderer.CreateCanvas(width, height, d.opts.Background)
	x := []int{0, w1 + d.opts.Gap}
	w := []int{w1, w2}
	for i := range d.frames {
		d.drawInfo(canvas, d.info[i], x[i]+margin)
		if d.frames[i] != nil {
			canvas.DrawImageCentered(d.frames[i], x[i], headerHeight, w[i], bodyH)
		}
	}
	d.drawTime(canvas, width, height)
	return canvas.ToImage()
}

func (d *Display) composeOverlay() image.Image {
	w, h := d.panelSize(d.overlay)
	height := headerHeight + h + footerHeight

	canvas := d.renderer.CreateCanvas(w, height, d.opts.Background)
	labels := make([]string, 0, 2)
	for _, text := range d.info {
		if name, _, _ := strings.Cut(text, "\n"); name != "" {
			labels = append(labels, name)
		}
	}
	d.drawInfo(canvas, strings.Join(labels, "\n"), margin)
	canvas.DrawImageCentered(d.overlay, 0, headerHeight, w, h)
	d.drawTime(canvas, w, height)
	return canvas.ToImage()
}

func (d *Display) drawInfo(canvas ports.Canvas, text string, x int) {
	if text == "" {
		return
	}
	canvas.DrawText(text, x, headerHeight/4, d.textStyle(ports.AlignLeft))
}

func (d *Display) drawTime(canvas ports.Canvas, width, height int) {
	if d.time == "" {
		return
	}
	canvas.DrawText(d.time, width/2, height-footerHeight/2, d.textStyle(ports.AlignCenter))
}

func (d *Display) textStyle(align ports.TextAlign) ports.TextStyle {
	return ports.TextStyle{
		FontPath: d.opts.FontPath,
		FontSize: d.opts.FontSize,
		Color:    d.opts.TextColor,
		Align:    align,
	}
}

// Latest returns the most recent composition, or nil before the first frame.
func (d *Display) Latest() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest
}

// Written returns the paths of all files written so far.
func (d *Display) Written() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.written...)
}

// ControlsEnabled reports the last controls state set by the controller.
func (d *Display) ControlsEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.controls
}

// LastError returns the last error reported by the controller.
func (d *Display) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Ensure Display implements ports.Display
var _ ports.Display = (*Display)(nil)
