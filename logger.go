package nospam

import (
	"github.com/hashicorp/go-hclog"
)

// Logger interface is provided
// to allow you to customize the logging internally done
// by the limiters.
//
// The default implementation logs through an hclog logger
// named "nospam" at Info level.
//
// If you want to disable the default logger
// you can pass an instance of nospam.NewNoOpLogger()
// to the limiter constructor,
// or route everything to your own hclog logger with nospam.NewHCLogger(...).
type Logger interface {
	Debug(string)
	Info(string)
	Warning(string)
	Error(string)
}

// NewHCLogger adapts an hclog.Logger to the Logger interface.
func NewHCLogger(l hclog.Logger) Logger {
	if l == nil {
		return newDefaultLogger()
	}
	return &hcLogger{l: l}
}

type hcLogger struct {
	l hclog.Logger
}

func newDefaultLogger() Logger {
	return &hcLogger{
		l: hclog.New(&hclog.LoggerOptions{
			Name:  "nospam",
			Level: hclog.Info,
		}),
	}
}

func (h *hcLogger) Debug(text string) {
	h.l.Debug(text)
}
func (h *hcLogger) Info(text string) {
	h.l.Info(text)
}
func (h *hcLogger) Warning(text string) {
	h.l.Warn(text)
}
func (h *hcLogger) Error(text string) {
	h.l.Error(text)
}

func NewNoOpLogger() Logger {
	return &noOpLogger{}
}

type noOpLogger struct {
}

func (l *noOpLogger) Debug(text string) {
	// NOP
}
func (l *noOpLogger) Info(text string) {
	// NOP
}
func (l *noOpLogger) Warning(text string) {
	// NOP
}
func (l *noOpLogger) Error(text string) {
	// NOP
}
