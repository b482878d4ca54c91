package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

type testAppender struct {
	tb      testing.TB
	encoder zapcore.Encoder
}

// NewTestAppender returns an appender that sends each entry to tb.Log, so output is attributed to
// the test that produced it and only printed when the test fails or runs verbose.
func NewTestAppender(tb testing.TB) Appender {
	return &testAppender{tb: tb, encoder: consoleEncoder(false)}
}

func (ta *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	ta.tb.Helper()
	buf, err := ta.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	ta.tb.Log(buf.String())
	return nil
}

func (ta *testAppender) Sync() error {
	return nil
}
