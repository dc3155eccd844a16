// Package ports defines the interfaces between the comparison core and
// its collaborators (decoders, renderers, displays, timers, logging).
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for per-frame and per-command details.
	LevelDebug LogLevel = iota
	// LevelInfo is for session-level progress (videos loaded, playback started).
	LevelInfo
	// LevelWarn is for rejected commands and recoverable decode problems.
	LevelWarn
	// LevelError is for failures that end a command-line run.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelQuiet {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a string into a LogLevel. Unknown strings yield LevelInfo.
func ParseLogLevel(s string) LogLevel {
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i)
		}
	}
	return LevelInfo
}

// Logger abstracts logging. The msg argument is a translation key; args are
// applied to the translated format.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
