package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/user/vidcompare/pkg/adapters/ffmpegsource"
	"github.com/user/vidcompare/pkg/adapters/ffprobe"
	"github.com/user/vidcompare/pkg/adapters/fftools"
	"github.com/user/vidcompare/pkg/adapters/ggrenderer"
	"github.com/user/vidcompare/pkg/adapters/logger"
	"github.com/user/vidcompare/pkg/adapters/mp4probe"
	"github.com/user/vidcompare/pkg/adapters/osfilesystem"
	"github.com/user/vidcompare/pkg/compare"
	"github.com/user/vidcompare/pkg/config"
	"github.com/user/vidcompare/pkg/ports"
)

// environment holds the adapters shared by all commands.
type environment struct {
	cfg      config.Config
	log      ports.Logger
	fs       *osfilesystem.FileSystem
	renderer *ggrenderer.Renderer
	probers  []ports.Prober
}

// setup builds the configuration (file, then environment, then flags), the
// logger and the metadata probers.
func setup(c *cli.Context) (*environment, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg, c.Bool("quiet"))
	if err != nil {
		return nil, err
	}
	env := &environment{
		cfg:      cfg,
		log:      log,
		fs:       osfilesystem.New(),
		renderer: ggrenderer.New(),
		probers:  []ports.Prober{mp4probe.New()},
	}
	if bin, err := fftools.Resolve(fftools.FFprobe, cfg.FFprobePath); err == nil {
		env.probers = append(env.probers, ffprobe.New(bin))
	} else {
		log.Debug("ffprobe unavailable, only MP4 metadata can be read: %v", err)
	}
	return env, nil
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("ffprobe") {
		cfg.FFprobePath = c.String("ffprobe")
	}
	if c.IsSet("width") {
		cfg.PanelWidth = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.PanelHeight = c.Int("height")
	}
	if c.IsSet("mode") {
		cfg.ViewMode = c.String("mode")
	}
	if c.IsSet("divider") {
		cfg.Divider = c.Float64("divider")
	}
	if c.IsSet("loop") {
		cfg.Loop = c.Bool("loop")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, quiet bool) (ports.Logger, error) {
	level := ports.ParseLogLevel(cfg.LogLevel)
	switch {
	case quiet:
		return logger.NewNoop(), nil
	case cfg.LogFormat == "json":
		z, err := logger.NewZap(level)
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
		return z, nil
	default:
		return logger.NewConsole(level), nil
	}
}

// close flushes buffered log entries.
func (e *environment) close() {
	if z, ok := e.log.(*logger.ZapLogger); ok {
		_ = z.Sync()
	}
}

// probe asks each prober in turn for the video's metadata.
func (e *environment) probe(path string) (ports.VideoInfo, error) {
	var errs []error
	for _, p := range e.probers {
		info, err := p.Probe(path)
		if err == nil {
			if err = info.Validate(); err == nil {
				return info, nil
			}
		}
		errs = append(errs, err)
	}
	return ports.VideoInfo{}, errors.Join(errs...)
}

// controller wires a comparison controller to ffmpeg decoding and the given
// display and timer.
func (e *environment) controller(display ports.Display, timer ports.Timer) (*compare.Controller, error) {
	bin, err := fftools.Resolve(fftools.FFmpeg, e.cfg.FFmpegPath)
	if err != nil {
		return nil, err
	}
	opener := ffmpegsource.NewOpener(bin, e.log, e.probers...)
	opener.SetMaxSkip(e.cfg.MaxSkip)
	return compare.New(opener, e.renderer, display, timer, e.log, e.cfg.ToControllerOptions()), nil
}
