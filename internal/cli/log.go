package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the logger shared by the CLI and the server. Timestamps
// are formatted as "HH:MM:SS.ms".
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start)
}

// done logs msg with the elapsed time, for example "aligned 12 pairs (35ms)".
func (p *progress) done(msg string, keyvals ...interface{}) {
	p.logger.Info(msg, append(keyvals, "elapsed", p.elapsed().Round(time.Millisecond))...)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFromContext returns the logger attached to ctx, or log.Default().
func LoggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
