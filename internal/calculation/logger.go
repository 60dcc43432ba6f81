package calculation

import "fmt"

// Logger is the engine's logging hook. The engine logs decisions at debug
// level and recoverable data problems (unknown jurisdiction, clamped inputs)
// at warn level. The default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// prefixed tags every message with a component name, e.g. "solver: ".
type prefixed struct {
	prefix string
	next   Logger
}

func withPrefix(l Logger, component string) Logger {
	if l == nil {
		return NopLogger{}
	}
	if _, nop := l.(NopLogger); nop {
		return l
	}
	return prefixed{prefix: component + ": ", next: l}
}

func (p prefixed) Debugf(format string, args ...any) { p.next.Debugf("%s", p.msg(format, args)) }
func (p prefixed) Infof(format string, args ...any)  { p.next.Infof("%s", p.msg(format, args)) }
func (p prefixed) Warnf(format string, args ...any)  { p.next.Warnf("%s", p.msg(format, args)) }
func (p prefixed) Errorf(format string, args ...any) { p.next.Errorf("%s", p.msg(format, args)) }

func (p prefixed) msg(format string, args []any) string {
	return p.prefix + fmt.Sprintf(format, args...)
}
