package pngdisplay

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/user/vidcompare/pkg/adapters/ggrenderer"
	"github.com/user/vidcompare/pkg/adapters/logger"
	"github.com/user/vidcompare/pkg/mocks"
	"github.com/user/vidcompare/pkg/ports"
)

func frame(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.PanelWidth, opts.PanelHeight, opts.Gap = 100, 50, 10
	return opts
}

func TestDisplay_FlushBeforeFirstFrameWritesNothing(t *testing.T) {
	fs := mocks.NewFileSystem()
	d := New("out", fs, &mocks.Renderer{}, logger.NewNoop(), smallOptions())

	d.ShowTime("00:00 / 00:00")
	if err := d.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(fs.Paths()) != 0 {
		t.Errorf("expected no files, got %v", fs.Paths())
	}
	if d.Latest() != nil {
		t.Error("expected no composition")
	}
}

func TestDisplay_WritesNumberedFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	d := New("out", fs, &mocks.Renderer{}, logger.NewNoop(), smallOptions())

	for i := 0; i < 3; i++ {
		d.ShowFrame(ports.SlotLeft, frame(100, 50))
		d.ShowFrame(ports.SlotRight, frame(100, 50))
		if err := d.Flush(); err != nil {
			t.Fatalf("Flush failed: %v", err)
		}
	}

	want := []string{
		filepath.Join("out", "frame-000000.png"),
		filepath.Join("out", "frame-000001.png"),
		filepath.Join("out", "frame-000002.png"),
	}
	got := fs.Paths()
	if len(got) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if len(d.Written()) != 3 {
		t.Errorf("expected 3 written paths, got %d", len(d.Written()))
	}
}

func TestDisplay_SideBySideLayout(t *testing.T) {
	d := New("", mocks.NewFileSystem(), ggrenderer.New(), logger.NewNoop(), smallOptions())

	d.ShowFrame(ports.SlotLeft, frame(100, 50))
	d.ShowFrame(ports.SlotRight, frame(120, 40))
	if err := d.Flush(); err != nil {
		t.Fatal(err)
	}

	b := d.Latest().Bounds()
	wantW := 100 + 10 + 120
	wantH := headerHeight + 50 + footerHeight
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("expected %dx%d, got %dx%d", wantW, wantH, b.Dx(), b.Dy())
	}
}

func TestDisplay_OverlayLayout(t *testing.T) {
	d := New("", mocks.NewFileSystem(), ggrenderer.New(), logger.NewNoop(), smallOptions())

	d.ShowFrame(ports.SlotLeft, frame(100, 50))
	d.ShowOverlay(frame(100, 50))
	if err := d.Flush(); err != nil {
		t.Fatal(err)
	}

	b := d.Latest().Bounds()
	if b.Dx() != 100 {
		t.Errorf("expected single panel width 100, got %d", b.Dx())
	}

	// switching back to side-by-side
	d.ShowFrame(ports.SlotLeft, frame(100, 50))
	d.ShowFrame(ports.SlotRight, frame(100, 50))
	_ = d.Flush()
	if d.Latest().Bounds().Dx() != 210 {
		t.Errorf("expected side-by-side width 210, got %d", d.Latest().Bounds().Dx())
	}
}

func TestDisplay_DrawsInfoAndTime(t *testing.T) {
	canvas := &mocks.Canvas{}
	r := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas { return canvas },
	}
	d := New("", mocks.NewFileSystem(), r, logger.NewNoop(), smallOptions())

	d.ShowInfo(ports.SlotLeft, "File: a.mp4\nSize: 64x36 | 30.00 FPS | 10.00s")
	d.ShowFrame(ports.SlotLeft, frame(10, 10))
	d.ShowTime("00:05 / 00:10")
	if err := d.Flush(); err != nil {
		t.Fatal(err)
	}

	if len(canvas.Texts) != 2 {
		t.Fatalf("expected info and time text, got %v", canvas.Texts)
	}
	if canvas.Texts[1] != "00:05 / 00:10" {
		t.Errorf("expected time text last, got %q", canvas.Texts[1])
	}
}

func TestDisplay_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("disk full") }
	d := New("out", fs, &mocks.Renderer{}, logger.NewNoop(), smallOptions())

	d.ShowFrame(ports.SlotLeft, frame(10, 10))
	if err := d.Flush(); err == nil {
		t.Error("expected write error")
	}
}

func TestDisplay_RecordsState(t *testing.T) {
	d := New("", mocks.NewFileSystem(), &mocks.Renderer{}, logger.NewNoop(), smallOptions())

	d.SetControlsEnabled(true)
	if !d.ControlsEnabled() {
		t.Error("expected controls enabled")
	}

	err := errors.New("boom")
	d.ReportError(err)
	if d.LastError() != err {
		t.Errorf("expected last error to be recorded, got %v", d.LastError())
	}

	// invalid slots are ignored
	d.ShowFrame(ports.Slot(3), frame(10, 10))
	_ = d.Flush()
	if d.Latest() != nil {
		t.Error("expected invalid slot to be ignored")
	}
}
