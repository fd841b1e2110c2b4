package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger writes component-tagged diagnostics to stderr. Debug and Info are
// gated on the verbose flag so the TUI stays quiet by default.
type Logger struct {
	component string
	verbose   func() bool
	writer    io.Writer
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance
func New(component string, verbose func() bool) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		writer:    os.Stderr,
	}
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		writer:    l.writer,
	}
}

// SetWriter redirects log output, used by tests
func (l *Logger) SetWriter(w io.Writer) {
	l.writer = w
}

// Debug logs debug messages (only when verbose)
func (l *Logger) Debug(msg string, fields ...Field) {
	if l.isVerbose() {
		l.log("DEBUG", msg, fields)
	}
}

// Info logs informational messages (only when verbose)
func (l *Logger) Info(msg string, fields ...Field) {
	if l.isVerbose() {
		l.log("INFO", msg, fields)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log("WARN", msg, fields)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, fields ...Field) {
	l.log("ERROR", msg, fields)
}

func (l *Logger) isVerbose() bool {
	return l.verbose != nil && l.verbose()
}

func (l *Logger) log(level, msg string, fields []Field) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var fieldsStr string
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", field.Key, field.Value))
		}
		fieldsStr = " [" + strings.Join(parts, " ") + "]"
	}

	line := fmt.Sprintf("[%s] %s [%s] %s%s\n",
		time.Now().Format("15:04:05.000"), level, component, msg, fieldsStr)

	if _, err := fmt.Fprint(l.writer, line); err != nil {
		// Nothing sensible left to do when the logger itself cannot write
		_ = err
	}
}

// Helper constructors for common field types

func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
