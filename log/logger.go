package log

import (
	"fmt"
	"io"
	"log/slog"
)

type Logger interface {
	Log(format string, a ...interface{})
}

var (
	_ Logger = &logger{}
	_ Logger = &nopLogger{}
)

type logger struct {
	l *slog.Logger
}

// NewLogger returns a Logger writing one debug-level text record per call to w.
// Timestamps are omitted so that the output is stable across runs.
func NewLogger(w io.Writer) (*logger, error) {
	if w == nil {
		return nil, fmt.Errorf("w is nil; NewLogger() needs a writer")
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return &logger{
		l: slog.New(h),
	}, nil
}

func (l *logger) Log(format string, a ...interface{}) {
	l.l.Debug(fmt.Sprintf(format, a...))
}

type nopLogger struct {
}

func NewNopLogger() *nopLogger {
	return &nopLogger{}
}

func (l *nopLogger) Log(format string, a ...interface{}) {
}
