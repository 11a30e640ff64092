// Package logger provides leveled logging for the pdfannotate CLI.
// Debug lines trace loads, page transitions and exports when --verbose is
// set; --quiet keeps only warnings and errors.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is a logging threshold.
type Level int

// Levels, from most to least verbose.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes prefixed lines at or above its level. It is safe for
// concurrent use.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
}

// New returns a logger writing to w at LevelInfo. A nil w means os.Stderr.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{level: LevelInfo, output: w}
}

// Configure sets the level from the CLI switches. quiet wins over verbose.
func (l *Logger) Configure(verbose, quiet bool) {
	switch {
	case quiet:
		l.SetLevel(LevelWarn)
	case verbose:
		l.SetLevel(LevelDebug)
	default:
		l.SetLevel(LevelInfo)
	}
}

// SetLevel sets the threshold.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// IsVerbose returns true if debug lines are written.
func (l *Logger) IsVerbose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level <= LevelDebug
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *Logger) logf(level Level, prefix, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	fmt.Fprintf(l.output, prefix+format+"\n", args...)
}

// Debugf prints a message in verbose mode.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, "[DEBUG] ", format, args...) }

// Infof prints an informational message unless quiet.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, "[INFO] ", format, args...) }

// Warnf prints a warning.
func (l *Logger) Warnf(format string, args ...any) { l.logf(LevelWarn, "[WARN] ", format, args...) }

// Errorf prints an error.
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, "[ERROR] ", format, args...) }
