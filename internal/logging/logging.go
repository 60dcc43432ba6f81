// Package logging builds the CLI's slog logger and bridges it to the
// calculation engine's printf-style Logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

type contextKey string

const loggerKey contextKey = "logger"

// Options selects the handler and threshold.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// ParseLevel maps a level name to a slog level. Unknown names yield info and
// ok=false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level, ok := ParseLevel(opts.Level)

	hopts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}
	l := slog.New(handler)
	if !ok {
		l.Warn("invalid log level, defaulting to info", "configured", opts.Level)
	}
	return l
}

// FromContext retrieves a logger from context, or returns slog's default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// ToContext embeds a slog.Logger into a context.Context.
func ToContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Adapter satisfies calculation.Logger on top of slog.
type Adapter struct {
	L *slog.Logger
}

// NewAdapter wraps l; nil uses slog's default logger.
func NewAdapter(l *slog.Logger) *Adapter {
	if l == nil {
		l = slog.Default()
	}
	return &Adapter{L: l}
}

func (a *Adapter) Debugf(format string, args ...any) {
	a.log(slog.LevelDebug, format, args)
}

func (a *Adapter) Infof(format string, args ...any) {
	a.log(slog.LevelInfo, format, args)
}

func (a *Adapter) Warnf(format string, args ...any) {
	a.log(slog.LevelWarn, format, args)
}

func (a *Adapter) Errorf(format string, args ...any) {
	a.log(slog.LevelError, format, args)
}

func (a *Adapter) log(level slog.Level, format string, args []any) {
	ctx := context.Background()
	if !a.L.Enabled(ctx, level) {
		return
	}
	a.L.Log(ctx, level, fmt.Sprintf(format, args...))
}
