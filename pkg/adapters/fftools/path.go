// Package fftools locates the ffmpeg and ffprobe executables.
package fftools

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrNotFound is returned when a tool cannot be located.
var ErrNotFound = errors.New("fftools: executable not found")

// Tool names one of the ffmpeg executables.
type Tool string

const (
	FFmpeg  Tool = "ffmpeg"
	FFprobe Tool = "ffprobe"
)

// envVar returns the environment variable consulted for the tool.
func (t Tool) envVar() string {
	if t == FFprobe {
		return "FFPROBE_PATH"
	}
	return "FFMPEG_PATH"
}

// Resolve finds the tool in the following order:
//  1. explicitPath, if non-empty (must exist)
//  2. FFMPEG_PATH / FFPROBE_PATH environment variable
//  3. PATH, then common install locations
func Resolve(tool Tool, explicitPath string) (string, error) {
	if explicitPath != "" {
		if p := resolveExecutable(explicitPath); p != "" {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s (custom path %s)", ErrNotFound, tool, explicitPath)
	}

	if envPath := os.Getenv(tool.envVar()); envPath != "" {
		if p := resolveExecutable(envPath); p != "" {
			return p, nil
		}
	}

	for _, candidate := range candidates(tool) {
		if p := resolveExecutable(candidate); p != "" {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, tool)
}

// Available reports whether the tool can be resolved without an explicit path.
func Available(tool Tool) bool {
	_, err := Resolve(tool, "")
	return err == nil
}

func candidates(tool Tool) []string {
	name := string(tool)
	if runtime.GOOS == "windows" {
		name += ".exe"
		return []string{
			name,
			`C:\ffmpeg\bin\` + name,
			`C:\Program Files\ffmpeg\bin\` + name,
			`C:\Program Files (x86)\ffmpeg\bin\` + name,
		}
	}
	return []string{
		name,
		"/usr/bin/" + name,
		"/usr/local/bin/" + name,
		"/opt/homebrew/bin/" + name,
		"/snap/bin/" + name,
	}
}

// resolveExecutable returns nameOrPath if it is an existing file path,
// otherwise looks it up in PATH. It returns "" when nothing is found.
func resolveExecutable(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) {
		if st, err := os.Stat(nameOrPath); err == nil && !st.IsDir() {
			return nameOrPath
		}
		return ""
	}
	if p, err := exec.LookPath(nameOrPath); err == nil {
		return p
	}
	return ""
}
