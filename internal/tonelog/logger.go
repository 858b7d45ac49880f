// Package tonelog provides key/value logging for tonekit. Logging is off
// until Init or SetOutput is called, so library code can log freely.
package tonelog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes timestamped, leveled lines with trailing key=value pairs.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	file    *os.File
	enabled bool
	debug   bool
}

var (
	// Log is the global logger instance.
	Log     = &Logger{}
	logOnce sync.Once
)

// Init opens path for appending and directs the global logger to it.
// If path is empty, logging is disabled.
func Init(path string) error {
	if path == "" {
		Log.mu.Lock()
		Log.enabled = false
		Log.mu.Unlock()
		return nil
	}

	var initErr error
	logOnce.Do(func() {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			initErr = err
			return
		}
		Log.mu.Lock()
		Log.file = f
		Log.out = f
		Log.enabled = true
		Log.debug = true
		Log.mu.Unlock()
		Log.Info("Logger initialized", "path", path)
	})
	return initErr
}

// New returns a logger writing to w. Debug lines are dropped unless debug is set.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{out: w, enabled: w != nil, debug: debug}
}

// SetOutput directs the logger to w, e.g. os.Stderr for --verbose.
func (l *Logger) SetOutput(w io.Writer, debug bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.enabled = w != nil
	l.debug = debug
}

// Close closes the log file, if one was opened by Init.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Enabled returns whether logging is active.
func (l *Logger) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Writer returns the underlying io.Writer for use with other logging libraries.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.out == nil {
		return io.Discard
	}
	return l.out
}

func (l *Logger) log(level string, msg string, keyvals ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || l.out == nil {
		return
	}
	if level == "DEBUG" && !l.debug {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	line := fmt.Sprintf("%s [%s] %s", timestamp, level, msg)

	for i := 0; i < len(keyvals)-1; i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}
	if len(keyvals)%2 == 1 {
		line += fmt.Sprintf(" %v=<missing>", keyvals[len(keyvals)-1])
	}

	fmt.Fprintln(l.out, line)
	if l.file != nil {
		l.file.Sync()
	}
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.log("DEBUG", msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.log("INFO", msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.log("WARN", msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.log("ERROR", msg, keyvals...)
}

// Timed logs the duration of an operation. Usage:
//
//	defer tonelog.Log.Timed("render preview")()
func (l *Logger) Timed(operation string) func() {
	if !l.Enabled() {
		return func() {}
	}
	start := time.Now()
	l.Debug(operation, "status", "started")
	return func() {
		l.Debug(operation, "status", "completed", "duration", time.Since(start))
	}
}
