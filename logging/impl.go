package logging

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errUnpairedKey = errors.New("unpaired log key")

type fanoutLogger struct {
	name string
	// shared with subloggers
	level     *atomic.Int32
	utc       bool
	appenders []Appender
}

func (l *fanoutLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.emit(zapcore.DebugLevel, msg, keysAndValues)
}

func (l *fanoutLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.emit(zapcore.InfoLevel, msg, keysAndValues)
}

func (l *fanoutLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.emit(zapcore.WarnLevel, msg, keysAndValues)
}

func (l *fanoutLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.emit(zapcore.ErrorLevel, msg, keysAndValues)
}

func (l *fanoutLogger) SetLevel(level zapcore.Level) {
	l.level.Store(int32(level))
}

func (l *fanoutLogger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return &fanoutLogger{name: name, level: l.level, utc: l.utc, appenders: l.appenders}
}

func (l *fanoutLogger) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
}

func (l *fanoutLogger) Sync() error {
	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

// emit must be called directly from the exported level methods; the caller lookup counts on it.
func (l *fanoutLogger) emit(level zapcore.Level, msg string, keysAndValues []interface{}) {
	if level < zapcore.Level(l.level.Load()) {
		return
	}
	now := time.Now()
	if l.utc {
		now = now.UTC()
	}
	entry := zapcore.Entry{
		Level:      level,
		Time:       now,
		LoggerName: l.name,
		Message:    msg,
		Caller:     zapcore.NewEntryCaller(runtime.Caller(2)),
	}
	fields := pairsToFields(keysAndValues)
	for _, appender := range l.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "writing log entry %q", msg))
		}
	}
}

// pairsToFields reads keysAndValues as alternating keys and values. A trailing key with no value
// is kept and carries errUnpairedKey.
func pairsToFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.Error(errors.Wrap(errUnpairedKey, key)))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
