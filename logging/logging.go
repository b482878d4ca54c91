// Package logging is a small structured logger over zap. Entries are built once and fanned out to
// appenders, which are zap cores or anything else that can write a zapcore.Entry.
package logging

import (
	"testing"

	"go.uber.org/atomic"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is what components take when they need to log. Only the key/value forms exist.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// SetLevel changes the minimum level of this logger and every logger derived from it.
	SetLevel(level zapcore.Level)
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	Sync() error
}

// NewLogger returns a logger that writes entries at or above level to stdout, timestamped in UTC.
func NewLogger(name string, level zapcore.Level) Logger {
	return &fanoutLogger{
		name:      name,
		level:     atomic.NewInt32(int32(level)),
		utc:       true,
		appenders: []Appender{NewStdoutAppender()},
	}
}

// NewTestLogger returns a debug logger that writes to the test's log.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is NewTestLogger that also records every entry for assertions.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := &fanoutLogger{
		level:     atomic.NewInt32(int32(zapcore.DebugLevel)),
		appenders: []Appender{NewTestAppender(tb), core},
	}
	return logger, observed
}
