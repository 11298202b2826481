// Package applog provides the tool's minimal leveled logger: a thin
// wrapper around an io.Writer, generalized from a plain Logln/Logf
// pair into four verbosity levels selected by repeated -v flags.
package applog

import (
	"fmt"
	"io"
)

// Level is a verbosity threshold. Higher levels are more chatty.
type Level int

const (
	// Warn is always shown unless the logger is fully silenced.
	Warn Level = iota
	Info
	Debug
	Trace
)

// ParseLevel converts a repeated -v flag count into a Level, capping
// at Trace.
func ParseLevel(verbosity int) Level {
	switch {
	case verbosity <= 0:
		return Warn
	case verbosity == 1:
		return Info
	case verbosity == 2:
		return Debug
	default:
		return Trace
	}
}

// Logger is a minimal wrapper around an io.Writer, gated by Level.
type Logger struct {
	io.Writer
	level Level
}

// New returns a new Logger writing to w at the given level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{Writer: w, level: level}
}

func (l *Logger) logln(lvl Level, args ...interface{}) {
	if l == nil || lvl > l.level {
		return
	}
	fmt.Fprintln(l, args...)
}

func (l *Logger) logf(lvl Level, f string, args ...interface{}) {
	if l == nil || lvl > l.level {
		return
	}
	fmt.Fprintf(l, f, args...)
}

// Warnln logs a line at Warn level.
func (l *Logger) Warnln(args ...interface{}) { l.logln(Warn, args...) }

// Warnf logs a formatted string at Warn level.
func (l *Logger) Warnf(f string, args ...interface{}) { l.logf(Warn, f, args...) }

// Infoln logs a line at Info level.
func (l *Logger) Infoln(args ...interface{}) { l.logln(Info, args...) }

// Infof logs a formatted string at Info level.
func (l *Logger) Infof(f string, args ...interface{}) { l.logf(Info, f, args...) }

// Debugln logs a line at Debug level.
func (l *Logger) Debugln(args ...interface{}) { l.logln(Debug, args...) }

// Debugf logs a formatted string at Debug level.
func (l *Logger) Debugf(f string, args ...interface{}) { l.logf(Debug, f, args...) }

// Traceln logs a line at Trace level.
func (l *Logger) Traceln(args ...interface{}) { l.logln(Trace, args...) }

// Tracef logs a formatted string at Trace level.
func (l *Logger) Tracef(f string, args ...interface{}) { l.logf(Trace, f, args...) }
