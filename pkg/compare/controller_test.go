package compare

import (
	"errors"
	"image"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/user/vidcompare/pkg/adapters/logger"
	"github.com/user/vidcompare/pkg/mocks"
	"github.com/user/vidcompare/pkg/playback"
	"github.com/user/vidcompare/pkg/ports"
)

type fixture struct {
	ctrl     *Controller
	opener   *mocks.Opener
	display  *mocks.Display
	timer    *mocks.Timer
	renderer *mocks.Renderer
}

func newFixture(t *testing.T, sources ...*mocks.FrameSource) *fixture {
	t.Helper()
	f := &fixture{
		opener:   mocks.NewOpener(sources...),
		display:  mocks.NewDisplay(),
		timer:    mocks.NewTimer(),
		renderer: &mocks.Renderer{},
	}
	f.ctrl = New(f.opener, f.renderer, f.display, f.timer, logger.NewNoop(), DefaultOptions())
	t.Cleanup(func() { f.ctrl.Close() })
	return f
}

func (f *fixture) loadBoth(t *testing.T, a, b string) {
	t.Helper()
	if err := f.ctrl.LoadVideo(ports.SlotLeft, a); err != nil {
		t.Fatalf("load slot 1: %v", err)
	}
	if err := f.ctrl.LoadVideo(ports.SlotRight, b); err != nil {
		t.Fatalf("load slot 2: %v", err)
	}
}

func TestController_UpperBoundIsShorterVideo(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int
		expect int
	}{
		{"first shorter", 120, 300, 119},
		{"second shorter", 300, 200, 199},
		{"equal", 50, 50, 49},
		{"single frame", 1, 90, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t,
				mocks.NewFrameSource("a.mp4", tt.a, 30),
				mocks.NewFrameSource("b.mp4", tt.b, 30),
			)
			f.loadBoth(t, "a.mp4", "b.mp4")

			if got := f.ctrl.UpperBound(); got != tt.expect {
				t.Errorf("expected upper bound %d, got %d", tt.expect, got)
			}
			if f.ctrl.Phase() != BothVideosLoaded {
				t.Errorf("expected both-videos, got %s", f.ctrl.Phase())
			}
			if !f.display.ControlsEnabled {
				t.Error("controls should be enabled")
			}
		})
	}
}

func TestController_SeekClamps(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 100, 25),
		mocks.NewFrameSource("b.mp4", 80, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	inputs := []int{-1, 0, 42, 79, 80, 1000, math.MinInt, math.MaxInt}
	for _, in := range inputs {
		if err := f.ctrl.Seek(in); err != nil {
			t.Fatalf("Seek(%d): %v", in, err)
		}
		pos := f.ctrl.Position()
		if pos < 0 || pos > f.ctrl.UpperBound() {
			t.Errorf("Seek(%d) left position %d outside [0, %d]", in, pos, f.ctrl.UpperBound())
		}
	}

	f.ctrl.Seek(-5)
	if f.ctrl.Position() != 0 {
		t.Errorf("expected 0 for negative seek, got %d", f.ctrl.Position())
	}
	f.ctrl.Seek(1 << 40)
	if f.ctrl.Position() != 79 {
		t.Errorf("expected 79 for huge seek, got %d", f.ctrl.Position())
	}
}

func TestController_SeekFetchesBothFrames(t *testing.T) {
	a := mocks.NewFrameSource("a.mp4", 100, 25)
	b := mocks.NewFrameSource("b.mp4", 100, 25)
	f := newFixture(t, a, b)
	f.loadBoth(t, "a.mp4", "b.mp4")

	f.ctrl.Seek(37)

	if a.Reads[len(a.Reads)-1] != 37 || b.Reads[len(b.Reads)-1] != 37 {
		t.Errorf("expected both sources to read frame 37, got %v and %v", a.Reads, b.Reads)
	}
	if f.display.Frames[ports.SlotLeft] == nil || f.display.Frames[ports.SlotRight] == nil {
		t.Error("expected frames in both panels")
	}
}

func TestController_SeekInterruptsPlayback(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 100, 25),
		mocks.NewFrameSource("b.mp4", 100, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	f.ctrl.TogglePlayback()
	if !f.timer.Running() {
		t.Fatal("timer should run while playing")
	}

	f.ctrl.Seek(10)

	if f.ctrl.State() != playback.Stopped {
		t.Error("seek should stop playback")
	}
	if f.timer.Running() {
		t.Error("seek should stop the timer")
	}
}

func TestController_CloseIsIdempotent(t *testing.T) {
	a := mocks.NewFrameSource("a.mp4", 10, 25)
	b := mocks.NewFrameSource("b.mp4", 10, 25)
	f := newFixture(t, a, b)
	f.loadBoth(t, "a.mp4", "b.mp4")

	if err := f.ctrl.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := f.ctrl.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if a.Releases != 1 || b.Releases != 1 {
		t.Errorf("expected one release per source, got %d and %d", a.Releases, b.Releases)
	}
	if f.ctrl.Phase() != NoVideos {
		t.Errorf("expected no-videos after close, got %s", f.ctrl.Phase())
	}
}

func TestController_PlaybackTerminatesAtUpperBound(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 60, 30),
		mocks.NewFrameSource("b.mp4", 60, 30),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")
	upper := f.ctrl.UpperBound()

	f.ctrl.Seek(upper - 1)
	f.ctrl.TogglePlayback()
	f.ctrl.OnTick()

	if f.ctrl.Position() != upper {
		t.Errorf("expected position %d, got %d", upper, f.ctrl.Position())
	}
	if f.ctrl.State() != playback.Stopped {
		t.Errorf("expected stopped at upper bound, got %s", f.ctrl.State())
	}
	if f.ctrl.Position() != upper {
		t.Errorf("position must not wrap, got %d", f.ctrl.Position())
	}
	if f.timer.Running() {
		t.Error("timer should be stopped")
	}
}

func TestController_TickIntervalFromFirstVideo(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 300, 30),
		mocks.NewFrameSource("b.mp4", 200, 24),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	f.ctrl.TogglePlayback()

	if len(f.timer.Starts) != 1 {
		t.Fatalf("expected one timer start, got %d", len(f.timer.Starts))
	}
	want := time.Second / 30
	if f.timer.Starts[0] != want {
		t.Errorf("expected interval %v, got %v", want, f.timer.Starts[0])
	}
}

func TestController_TimeText(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 251, 25),
		mocks.NewFrameSource("b.mp4", 400, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	f.ctrl.Seek(125)

	if got := f.display.TimeText(); got != "00:05 / 00:10" {
		t.Errorf("expected %q, got %q", "00:05 / 00:10", got)
	}
}

func TestController_Scenario(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 300, 30),
		mocks.NewFrameSource("b.mp4", 200, 24),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	if f.ctrl.UpperBound() != 199 {
		t.Fatalf("expected upper bound 199, got %d", f.ctrl.UpperBound())
	}

	f.ctrl.Seek(500)
	if f.ctrl.Position() != 199 {
		t.Fatalf("expected clamp to 199, got %d", f.ctrl.Position())
	}

	f.ctrl.TogglePlayback()
	f.ctrl.OnTick()

	if f.ctrl.State() != playback.Stopped {
		t.Errorf("expected stopped after one tick at upper bound, got %s", f.ctrl.State())
	}
	if f.ctrl.Position() != 199 {
		t.Errorf("expected position 199, got %d", f.ctrl.Position())
	}
	if f.timer.Running() {
		t.Error("no further ticks should be scheduled")
	}
}

func TestController_SingleVideoKeepsControlsDisabled(t *testing.T) {
	f := newFixture(t, mocks.NewFrameSource("a.mp4", 300, 30))

	if err := f.ctrl.LoadVideo(ports.SlotLeft, "a.mp4"); err != nil {
		t.Fatalf("load: %v", err)
	}

	if f.ctrl.Phase() != OneVideoLoaded {
		t.Errorf("expected one-video, got %s", f.ctrl.Phase())
	}
	if f.display.ControlsEnabled {
		t.Error("controls should stay disabled")
	}
	if err := f.ctrl.TogglePlayback(); !errors.Is(err, ErrControlsDisabled) {
		t.Errorf("expected ErrControlsDisabled from toggle, got %v", err)
	}
	if err := f.ctrl.Seek(3); !errors.Is(err, ErrControlsDisabled) {
		t.Errorf("expected ErrControlsDisabled from seek, got %v", err)
	}
	if f.display.Frames[ports.SlotLeft] == nil {
		t.Error("lone video should preview its first frame")
	}
	if f.display.TimeText() != EmptyTimeText {
		t.Errorf("expected empty time text, got %q", f.display.TimeText())
	}
}

func TestController_FailedLoadKeepsState(t *testing.T) {
	a := mocks.NewFrameSource("a.mp4", 100, 25)
	b := mocks.NewFrameSource("b.mp4", 100, 25)
	f := newFixture(t, a, b)
	f.loadBoth(t, "a.mp4", "b.mp4")
	f.ctrl.Seek(40)

	err := f.ctrl.LoadVideo(ports.SlotLeft, "missing.mp4")

	if !errors.Is(err, ports.ErrUnreadableFile) {
		t.Fatalf("expected ErrUnreadableFile, got %v", err)
	}
	if a.Closed() {
		t.Error("previous video must not be released on failed load")
	}
	if info, _ := f.ctrl.Info(ports.SlotLeft); info.Path != "a.mp4" {
		t.Errorf("slot 1 should still hold a.mp4, got %q", info.Path)
	}
	if f.ctrl.Position() != 40 || f.ctrl.Phase() != BothVideosLoaded {
		t.Error("failed load must not change state")
	}
	if len(f.display.Errors) != 1 {
		t.Errorf("expected one reported error, got %d", len(f.display.Errors))
	}
}

func TestController_OpenerErrorIsWrapped(t *testing.T) {
	f := newFixture(t)
	f.opener.OpenFunc = func(path string) (ports.FrameSource, error) {
		return nil, errors.New("boom")
	}

	err := f.ctrl.LoadVideo(ports.SlotRight, "x.avi")
	if !errors.Is(err, ports.ErrUnreadableFile) {
		t.Errorf("expected ErrUnreadableFile, got %v", err)
	}
}

func TestController_EmptyVideoIsUnreadable(t *testing.T) {
	empty := mocks.NewFrameSource("empty.mp4", 0, 25)
	f := newFixture(t, empty)

	err := f.ctrl.LoadVideo(ports.SlotLeft, "empty.mp4")
	if !errors.Is(err, ports.ErrUnreadableFile) {
		t.Fatalf("expected ErrUnreadableFile, got %v", err)
	}
	if !empty.Closed() {
		t.Error("rejected source should be closed")
	}
	if f.ctrl.Phase() != NoVideos {
		t.Errorf("expected no-videos, got %s", f.ctrl.Phase())
	}
}

func TestController_ReplaceReleasesOldAndReclamps(t *testing.T) {
	a := mocks.NewFrameSource("a.mp4", 300, 30)
	b := mocks.NewFrameSource("b.mp4", 300, 30)
	c := mocks.NewFrameSource("c.mp4", 50, 30)
	f := newFixture(t, a, b, c)
	f.loadBoth(t, "a.mp4", "b.mp4")
	f.ctrl.Seek(250)
	f.ctrl.TogglePlayback()

	if err := f.ctrl.LoadVideo(ports.SlotRight, "c.mp4"); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if !b.Closed() {
		t.Error("replaced video should be released")
	}
	if f.ctrl.UpperBound() != 49 {
		t.Errorf("expected upper bound 49, got %d", f.ctrl.UpperBound())
	}
	if f.ctrl.Position() != 49 {
		t.Errorf("expected position clamped to 49, got %d", f.ctrl.Position())
	}
	if f.ctrl.State() != playback.Stopped {
		t.Error("replacing a video should stop playback")
	}
	if f.timer.Running() {
		t.Error("replacing a video should stop the timer")
	}
}

func TestController_ResizeRerendersWithoutMoving(t *testing.T) {
	a := mocks.NewFrameSource("a.mp4", 100, 25)
	b := mocks.NewFrameSource("b.mp4", 100, 25)
	f := newFixture(t, a, b)
	f.loadBoth(t, "a.mp4", "b.mp4")
	f.ctrl.Seek(12)
	reads := a.ReadCount()

	if err := f.ctrl.Resize(ports.SlotLeft, 320, 200); err != nil {
		t.Fatalf("resize: %v", err)
	}

	if f.ctrl.Position() != 12 {
		t.Errorf("resize moved position to %d", f.ctrl.Position())
	}
	if a.ReadCount() != reads {
		t.Error("resize should reuse the decoded frame")
	}
	last := f.renderer.FitCalls[len(f.renderer.FitCalls)-2]
	if last.Width != 320 || last.Height != 200 {
		t.Errorf("expected fit to 320x200, got %dx%d", last.Width, last.Height)
	}

	if err := f.ctrl.Resize(ports.SlotLeft, 0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if err := f.ctrl.Resize(ports.Slot(3), 10, 10); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("expected ErrInvalidSlot, got %v", err)
	}
}

func TestController_RenderQuality(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 100, 25),
		mocks.NewFrameSource("b.mp4", 100, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	f.ctrl.TogglePlayback()
	f.ctrl.OnTick()
	playing := f.renderer.FitCalls[len(f.renderer.FitCalls)-1]
	if playing.Quality != ports.ScaleFast {
		t.Errorf("expected fast scaling while playing, got %v", playing.Quality)
	}

	f.ctrl.TogglePlayback()
	paused := f.renderer.FitCalls[len(f.renderer.FitCalls)-1]
	if paused.Quality != ports.ScaleSmooth {
		t.Errorf("expected smooth scaling when paused, got %v", paused.Quality)
	}
}

func TestController_LoopWraps(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 5, 25),
		mocks.NewFrameSource("b.mp4", 5, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	if err := f.ctrl.ToggleLoop(); err != nil {
		t.Fatalf("toggle loop: %v", err)
	}
	f.ctrl.Seek(4)
	f.ctrl.TogglePlayback()
	f.ctrl.OnTick()

	if f.ctrl.Position() != 0 {
		t.Errorf("expected wrap to 0, got %d", f.ctrl.Position())
	}
	if f.ctrl.State() != playback.Playing {
		t.Error("looping playback should continue")
	}
}

func TestController_OverlayMode(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 20, 25),
		mocks.NewFrameSource("b.mp4", 20, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")

	if err := f.ctrl.ToggleMode(); err != nil {
		t.Fatalf("toggle mode: %v", err)
	}
	if f.ctrl.Mode() != ModeOverlay {
		t.Fatalf("expected overlay, got %s", f.ctrl.Mode())
	}
	if f.display.Overlay == nil {
		t.Fatal("expected overlay image")
	}

	f.ctrl.SetDivider(1.7)
	if f.ctrl.Divider() != 1 {
		t.Errorf("expected divider clamped to 1, got %v", f.ctrl.Divider())
	}
	if got := f.renderer.OverlayCalls[len(f.renderer.OverlayCalls)-1]; got != 1 {
		t.Errorf("expected overlay rendered with divider 1, got %v", got)
	}

	f.ctrl.SetDivider(-3)
	if f.ctrl.Divider() != 0 {
		t.Errorf("expected divider clamped to 0, got %v", f.ctrl.Divider())
	}
}

func TestController_StaleTickIgnored(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 20, 25),
		mocks.NewFrameSource("b.mp4", 20, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")
	f.ctrl.Seek(3)

	f.ctrl.OnTick()

	if f.ctrl.Position() != 3 {
		t.Errorf("tick while stopped moved position to %d", f.ctrl.Position())
	}
}

func TestController_DecodeFailureKeepsPosition(t *testing.T) {
	a := mocks.NewFrameSource("a.mp4", 20, 25)
	a.FrameAtFunc = func(index int) (image.Image, error) {
		return nil, errors.New("corrupt packet")
	}
	f := newFixture(t, a, mocks.NewFrameSource("b.mp4", 20, 25))
	f.loadBoth(t, "a.mp4", "b.mp4")

	if err := f.ctrl.Seek(7); err != nil {
		t.Fatalf("seek should not surface decode errors: %v", err)
	}
	if f.ctrl.Position() != 7 {
		t.Errorf("expected position 7, got %d", f.ctrl.Position())
	}
	if f.display.Frames[ports.SlotRight] == nil {
		t.Error("the healthy slot should still render")
	}
}

func TestController_InfoText(t *testing.T) {
	f := newFixture(t, mocks.NewFrameSource("/videos/a.mp4", 300, 30))
	f.ctrl.LoadVideo(ports.SlotLeft, "/videos/a.mp4")

	text := f.display.InfoText[ports.SlotLeft]
	if !strings.Contains(text, "File: a.mp4") || !strings.Contains(text, "30.00 FPS") || !strings.Contains(text, "10.00s") {
		t.Errorf("unexpected info text %q", text)
	}
}

func TestController_StepSaturates(t *testing.T) {
	f := newFixture(t,
		mocks.NewFrameSource("a.mp4", 20, 25),
		mocks.NewFrameSource("b.mp4", 20, 25),
	)
	f.loadBoth(t, "a.mp4", "b.mp4")
	f.ctrl.Seek(10)

	f.ctrl.Step(math.MaxInt)
	if f.ctrl.Position() != 19 {
		t.Errorf("expected 19, got %d", f.ctrl.Position())
	}
	f.ctrl.Step(-3)
	if f.ctrl.Position() != 16 {
		t.Errorf("expected 16, got %d", f.ctrl.Position())
	}
	f.ctrl.Step(math.MinInt)
	if f.ctrl.Position() != 0 {
		t.Errorf("expected 0, got %d", f.ctrl.Position())
	}
}
