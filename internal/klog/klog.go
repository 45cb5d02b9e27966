// Package klog wraps the standard library log package with leveled
// helpers, matching the terse "pkg: message" lines the rest of the kernel
// emits rather than introducing a structured-logging dependency.
package klog

import (
	"fmt"
	"log"
	"strings"
)

// Level gates which calls actually reach the underlying logger.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var current = LevelInfo

// SetLevel sets the process-wide verbosity floor; calls below it are
// dropped before formatting.
func SetLevel(l Level) { current = l }

func logf(l Level, prefix, format string, args ...interface{}) {
	if l > current {
		return
	}
	log.Printf(prefix+": "+format, args...)
}

func Debugf(prefix, format string, args ...interface{}) { logf(LevelDebug, prefix, format, args...) }
func Infof(prefix, format string, args ...interface{})  { logf(LevelInfo, prefix, format, args...) }
func Warnf(prefix, format string, args ...interface{})  { logf(LevelWarn, prefix, format, args...) }
func Errorf(prefix, format string, args ...interface{}) { logf(LevelError, prefix, format, args...) }

// Fields is a key=value decorator for log lines that need structured
// context without a new dependency: WithFields("scheduler", Fields{"frame": 12}).Infof(...).
type Fields map[string]interface{}

// WithFields returns a logger bound to prefix that prepends fields as
// space-separated key=value pairs ahead of the formatted message.
func WithFields(prefix string, fields Fields) *Logger {
	var b strings.Builder
	for k, v := range fields {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, v)
	}
	return &Logger{prefix: prefix, fields: b.String()}
}

// Logger is the bound form WithFields returns.
type Logger struct {
	prefix string
	fields string
}

func (l *Logger) line(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if l.fields == "" {
		return msg
	}
	return l.fields + " " + msg
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	logf(LevelDebug, l.prefix, "%s", l.line(format, args...))
}
func (l *Logger) Infof(format string, args ...interface{}) {
	logf(LevelInfo, l.prefix, "%s", l.line(format, args...))
}
func (l *Logger) Warnf(format string, args ...interface{}) {
	logf(LevelWarn, l.prefix, "%s", l.line(format, args...))
}
func (l *Logger) Errorf(format string, args ...interface{}) {
	logf(LevelError, l.prefix, "%s", l.line(format, args...))
}
