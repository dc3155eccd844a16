// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/user/vidcompare/pkg/adapters/pngdisplay"
	"github.com/user/vidcompare/pkg/compare"
	"github.com/user/vidcompare/pkg/ports"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "VIDCOMPARE_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config represents the full configuration for vidcompare.
type Config struct {
	// Layout
	PanelWidth      int     `yaml:"panel_width" env:"PANEL_WIDTH"`
	PanelHeight     int     `yaml:"panel_height" env:"PANEL_HEIGHT"`
	Gap             int     `yaml:"gap" env:"GAP"`
	BackgroundColor string  `yaml:"background_color" env:"BACKGROUND_COLOR"`
	TextColor       string  `yaml:"text_color" env:"TEXT_COLOR"`
	FontPath        string  `yaml:"font_path" env:"FONT_PATH"`
	FontSize        float64 `yaml:"font_size" env:"FONT_SIZE"`

	// Decoding
	FFmpegPath  string `yaml:"ffmpeg_path" env:"FFMPEG"`
	FFprobePath string `yaml:"ffprobe_path" env:"FFPROBE"`
	MaxSkip     int    `yaml:"max_skip" env:"MAX_SKIP"`

	// Playback
	PlayingQuality string  `yaml:"playing_quality" env:"PLAYING_QUALITY"`
	PausedQuality  string  `yaml:"paused_quality" env:"PAUSED_QUALITY"`
	Loop           bool    `yaml:"loop" env:"LOOP"`
	ViewMode       string  `yaml:"view_mode" env:"VIEW_MODE"`
	Divider        float64 `yaml:"divider" env:"DIVIDER"`

	// Preferences
	PrefsPath   string `yaml:"prefs_path" env:"PREFS_PATH"`
	RestoreLast bool   `yaml:"restore_last" env:"RESTORE_LAST"`

	// Output
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		PanelWidth:      640,
		PanelHeight:     360,
		Gap:             8,
		BackgroundColor: "#202020",
		TextColor:       "#ffffff",
		FontSize:        13,

		MaxSkip: 48,

		PlayingQuality: "fast",
		PausedQuality:  "smooth",
		ViewMode:       "side",
		Divider:        0.5,

		PrefsPath:   DefaultPrefsPath(),
		RestoreLast: true,

		OutputDir: "./frames",
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// DefaultPrefsPath returns the per-user preferences location.
func DefaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".vidcompare.yaml"
	}
	return filepath.Join(dir, "vidcompare", "prefs.yaml")
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from VIDCOMPARE_* environment variables.
// Unset variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.PanelWidth <= 0 || c.PanelHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: panel size %dx%d", ErrInvalidConfig, c.PanelWidth, c.PanelHeight))
	}
	if c.Gap < 0 {
		errs = append(errs, fmt.Errorf("%w: gap %d", ErrInvalidConfig, c.Gap))
	}
	if c.Divider < 0 || c.Divider > 1 {
		errs = append(errs, fmt.Errorf("%w: divider %v not in [0, 1]", ErrInvalidConfig, c.Divider))
	}
	for _, q := range []string{c.PlayingQuality, c.PausedQuality} {
		if q != "smooth" && q != "fast" {
			errs = append(errs, fmt.Errorf("%w: scale quality %q", ErrInvalidConfig, q))
		}
	}
	switch c.ViewMode {
	case "side", "overlay":
	default:
		errs = append(errs, fmt.Errorf("%w: view mode %q", ErrInvalidConfig, c.ViewMode))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat))
	}
	if ports.ParseLogLevel(c.LogLevel).String() != c.LogLevel {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel))
	}
	return errors.Join(errs...)
}

// ToControllerOptions converts Config to compare.Options.
func (c Config) ToControllerOptions() compare.Options {
	opts := compare.DefaultOptions()
	opts.PanelWidth = c.PanelWidth
	opts.PanelHeight = c.PanelHeight
	opts.Loop = c.Loop
	opts.Mode = compare.ParseMode(c.ViewMode)
	opts.Divider = c.Divider
	opts.PlayingQuality = ports.ParseScaleQuality(c.PlayingQuality)
	opts.PausedQuality = ports.ParseScaleQuality(c.PausedQuality)
	return opts
}

// ToDisplayOptions converts Config to pngdisplay.Options.
func (c Config) ToDisplayOptions() pngdisplay.Options {
	return pngdisplay.Options{
		PanelWidth:  c.PanelWidth,
		PanelHeight: c.PanelHeight,
		Gap:         c.Gap,
		Background:  ParseColor(c.BackgroundColor),
		TextColor:   ParseColor(c.TextColor),
		FontPath:    c.FontPath,
		FontSize:    c.FontSize,
	}
}

// ParseColor parses a "#rrggbb" string. Malformed input yields black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
