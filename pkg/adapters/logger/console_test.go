package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/vidcompare/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleWriter(ports.LevelInfo, &out, &errOut)

	log.Debug("hidden %d", 1)
	log.Info("loaded %d frames", 300)
	log.Warn("frame rates differ")
	log.Error("failed")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "loaded 300 frames") {
		t.Errorf("expected info on stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "frame rates differ") || !strings.Contains(errOut.String(), "failed") {
		t.Errorf("expected warn and error on stderr, got %q", errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleWriter(ports.LevelDebug, &out, &out)

	log.WithComponent("controller").Debug("seek to %d", 12)

	if got := strings.TrimSpace(out.String()); got != "[controller] seek to 12" {
		t.Errorf("unexpected line %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleWriter(ports.LevelQuiet, &out, &out)

	log.Error("nothing")

	if out.Len() != 0 {
		t.Errorf("quiet logger wrote %q", out.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "error", "quiet"} {
		if got := ports.ParseLogLevel(name).String(); got != name {
			t.Errorf("round trip of %q gave %q", name, got)
		}
	}
	if ports.ParseLogLevel("verbose") != ports.LevelInfo {
		t.Error("unknown level should fall back to info")
	}
}

func TestNoopLogger_WithComponentKeepsLogger(t *testing.T) {
	log := NewNoop()
	if log.WithComponent("session") != ports.Logger(log) {
		t.Error("expected the same no-op logger back")
	}
}
