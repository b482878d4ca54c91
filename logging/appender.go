package logging

import (
	"io"
	"os"

	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of console and test output.
const TimeLayout = "2006-01-02T15:04:05.000Z0700"

// Appender receives every entry a Logger lets through. Any zapcore.Core satisfies it, which is how
// the observer core of NewObservedTestLogger is attached.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

func consoleEncoder(lineEnding bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  zapcore.OmitKey,
		SkipLineEnding: !lineEnding,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// WriterAppender writes one tab separated line per entry.
type WriterAppender struct {
	w       io.Writer
	encoder zapcore.Encoder
}

// NewStdoutAppender returns a WriterAppender on stdout.
func NewStdoutAppender() *WriterAppender {
	return NewWriterAppender(os.Stdout)
}

// NewWriterAppender returns a WriterAppender on w.
func NewWriterAppender(w io.Writer) *WriterAppender {
	return &WriterAppender{w: w, encoder: consoleEncoder(true)}
}

// Write encodes the entry and writes it in a single call.
func (wa *WriterAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := wa.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	_, err = wa.w.Write(buf.Bytes())
	return err
}

// Sync flushes w if it supports syncing. Stdout is left alone.
func (wa *WriterAppender) Sync() error {
	if syncer, ok := wa.w.(zapcore.WriteSyncer); ok && wa.w != os.Stdout {
		return syncer.Sync()
	}
	return nil
}
