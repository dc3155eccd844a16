package logger

import "github.com/user/vidcompare/pkg/ports"

// NoopLogger drops every message. The CLI selects it for --quiet and tests
// hand it to controllers and sessions whose log output they do not inspect.
type NoopLogger struct{}

// NewNoop returns a logger that writes nothing.
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, args ...interface{}) {}

func (l *NoopLogger) Info(msg string, args ...interface{}) {}

func (l *NoopLogger) Warn(msg string, args ...interface{}) {}

func (l *NoopLogger) Error(msg string, args ...interface{}) {}

// WithComponent ignores the component; there is no output to tag.
func (l *NoopLogger) WithComponent(component string) ports.Logger {
	return l
}

var _ ports.Logger = (*NoopLogger)(nil)
