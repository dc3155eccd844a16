// Package session drives a comparison controller from a single event loop
// that serializes console commands and playback ticks.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/user/vidcompare/pkg/compare"
	"github.com/user/vidcompare/pkg/playback"
	"github.com/user/vidcompare/pkg/ports"
)

// Options configures a Session.
type Options struct {
	// StopAt pauses playback once the position reaches this frame. Negative disables it.
	StopAt int
	// ExitWhenIdle ends Run once input is exhausted and playback has stopped.
	ExitWhenIdle bool
	// StopOnError ends Run with the first failing command's error.
	StopOnError bool
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{StopAt: -1}
}

// Session owns the controller for the lifetime of Run. Every controller call
// happens on the goroutine running Run (or before it starts).
type Session struct {
	ctrl  *compare.Controller
	timer ports.Timer
	prefs ports.PreferenceStore
	fs    ports.FileSystem
	log   ports.Logger
	out   io.Writer
	opts  Options
}

// New creates a Session. prefs and fs may be nil to disable preferences.
func New(
	ctrl *compare.Controller,
	timer ports.Timer,
	prefs ports.PreferenceStore,
	fs ports.FileSystem,
	log ports.Logger,
	out io.Writer,
	opts Options,
) *Session {
	if out == nil {
		out = io.Discard
	}
	return &Session{
		ctrl:  ctrl,
		timer: timer,
		prefs: prefs,
		fs:    fs,
		log:   log.WithComponent("session"),
		out:   out,
		opts:  opts,
	}
}

// Restore reloads the videos remembered from the previous session. Paths
// that no longer exist are skipped.
func (s *Session) Restore() {
	if s.prefs == nil || s.fs == nil {
		return
	}
	prefs, err := s.prefs.Load()
	if err != nil {
		s.log.Warn("Failed to read preferences: %v", err)
		return
	}
	for _, slot := range []ports.Slot{ports.SlotLeft, ports.SlotRight} {
		path := prefs.Path(slot)
		if path == "" {
			continue
		}
		if ok, err := s.fs.Exists(path); err != nil || !ok {
			s.log.Debug("Skipping missing remembered video %s", path)
			continue
		}
		s.log.Info("Restoring %s into slot %d", path, int(slot))
		// a failed restore is already reported by the controller
		_ = s.load(slot, path)
	}
}

func (s *Session) load(slot ports.Slot, path string) error {
	if err := s.ctrl.LoadVideo(slot, path); err != nil {
		return err
	}
	if s.prefs != nil {
		if err := s.prefs.Remember(slot, path); err != nil {
			s.log.Warn("Failed to save preferences: %v", err)
		}
	}
	return nil
}

// Dispatch performs one command. It reports whether the session should end.
func (s *Session) Dispatch(cmd Command) (quit bool, err error) {
	switch cmd.Kind {
	case CmdLoad:
		err = s.load(cmd.Slot, cmd.Path)
	case CmdPlay:
		if s.ctrl.State() != playback.Playing {
			err = s.ctrl.TogglePlayback()
		}
	case CmdPause:
		if s.ctrl.State() == playback.Playing {
			err = s.ctrl.TogglePlayback()
		}
	case CmdToggle:
		err = s.ctrl.TogglePlayback()
	case CmdSeek:
		err = s.ctrl.Seek(cmd.Index)
	case CmdStep:
		err = s.ctrl.Step(cmd.Index)
	case CmdResize:
		err = s.ctrl.Resize(cmd.Slot, cmd.Width, cmd.Height)
	case CmdLoop:
		err = s.ctrl.ToggleLoop()
	case CmdMode:
		err = s.ctrl.ToggleMode()
	case CmdDivider:
		s.ctrl.SetDivider(cmd.Fraction)
	case CmdStatus:
		s.writeStatus()
	case CmdQuit:
		return true, nil
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownCommand, cmd.Kind)
	}
	return false, err
}

// Status returns a one-line summary of the controller state.
func (s *Session) Status() string {
	return fmt.Sprintf("%s %s frame %d/%d %s loop=%v mode=%s",
		s.ctrl.Phase(), s.ctrl.State(), s.ctrl.Position(), s.ctrl.UpperBound(),
		s.ctrl.TimeText(), s.ctrl.Loop(), s.ctrl.Mode())
}

func (s *Session) writeStatus() {
	fmt.Fprintln(s.out, s.Status())
}

// Execute parses and dispatches one console line, reporting failures on
// the session output.
func (s *Session) Execute(line string) (quit bool) {
	quit, _ = s.execute(line)
	return quit
}

func (s *Session) execute(line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		s.reportFailure(line, err)
		return false, err
	}
	quit, err := s.Dispatch(cmd)
	if err != nil {
		s.reportFailure(line, err)
	}
	return quit, err
}

func (s *Session) reportFailure(line string, err error) {
	s.log.Warn("Command %q failed: %v", line, err)
	fmt.Fprintf(s.out, "error: %v\n", err)
}

// Run processes lines and timer ticks until ctx is cancelled, a quit command
// arrives, a command fails (with StopOnError), or (with ExitWhenIdle) input
// ends while playback is stopped.
// The controller is closed before Run returns.
func (s *Session) Run(ctx context.Context, lines <-chan string) error {
	defer func() {
		if err := s.ctrl.Close(); err != nil {
			s.log.Warn("Failed to release videos: %v", err)
		}
	}()

	for {
		if lines == nil && s.opts.ExitWhenIdle && s.ctrl.State() != playback.Playing {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				lines = nil
				if !s.opts.ExitWhenIdle {
					return nil
				}
				continue
			}
			quit, err := s.execute(line)
			if err != nil && s.opts.StopOnError {
				return fmt.Errorf("%s: %w", line, err)
			}
			if quit {
				return nil
			}

		case <-s.timer.C():
			s.ctrl.OnTick()
			if s.opts.StopAt >= 0 && s.ctrl.State() == playback.Playing && s.ctrl.Position() >= s.opts.StopAt {
				s.log.Debug("Reached stop frame %d", s.opts.StopAt)
				_ = s.ctrl.TogglePlayback()
			}
		}
	}
}

// ReadLines streams non-empty lines from r until EOF or ctx ends.
func ReadLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case ch <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Feed returns a closed channel pre-loaded with lines, for scripted runs.
func Feed(lines ...string) <-chan string {
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}
	close(ch)
	return ch
}
