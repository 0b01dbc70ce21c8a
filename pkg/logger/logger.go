// Package logger provides the process-wide structured log used by driver-factory.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger *zerolog.Logger
	rotator      *lumberjack.Logger
	mu           sync.Mutex
)

// Init initializes the global logger with the specified log file path.
// The file is rotated once it grows past 10 MB.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if dir := filepath.Dir(logPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	// lumberjack opens lazily; fail here rather than on the first write.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //#nosec G304 -- user-provided log path
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	f.Close()

	rotator = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	setWriterLocked(rotator)
	return nil
}

// InitWriter sends log output to w instead of a file.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	setWriterLocked(w)
}

// SetVerbose enables debug level output.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger == nil {
		return
	}
	l := globalLogger.Level(levelFor(verbose))
	globalLogger = &l
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	logf(zerolog.InfoLevel, nil, format, v...)
}

// Debug logs a debug message.
func Debug(format string, v ...interface{}) {
	logf(zerolog.DebugLevel, nil, format, v...)
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	logf(zerolog.ErrorLevel, nil, format, v...)
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	logf(zerolog.WarnLevel, nil, format, v...)
}

// Entry carries fields attached to every message logged through it.
type Entry struct {
	fields map[string]interface{}
}

// With returns an Entry carrying key=value.
func With(key string, value interface{}) Entry {
	return Entry{fields: map[string]interface{}{key: value}}
}

// With returns a copy of e carrying an additional key=value.
func (e Entry) With(key string, value interface{}) Entry {
	fields := make(map[string]interface{}, len(e.fields)+1)
	for k, v := range e.fields {
		fields[k] = v
	}
	fields[key] = value
	return Entry{fields: fields}
}

// Info logs an info message with e's fields.
func (e Entry) Info(format string, v ...interface{}) {
	logf(zerolog.InfoLevel, e.fields, format, v...)
}

// Debug logs a debug message with e's fields.
func (e Entry) Debug(format string, v ...interface{}) {
	logf(zerolog.DebugLevel, e.fields, format, v...)
}

// Warn logs a warning message with e's fields.
func (e Entry) Warn(format string, v ...interface{}) {
	logf(zerolog.WarnLevel, e.fields, format, v...)
}

// Error logs an error message with e's fields.
func (e Entry) Error(format string, v ...interface{}) {
	logf(zerolog.ErrorLevel, e.fields, format, v...)
}

// GetWriter returns a writer for driver service output. Each line written
// to it is logged as a separate info event tagged source=driver, so plain
// text from chromedriver or geckodriver lands in the log whatever its format.
// Writes never fail; output is dropped while the logger is uninitialized.
func GetWriter() io.Writer {
	return &lineWriter{}
}

type lineWriter struct {
	mu  sync.Mutex
	buf []byte
}

var driverFields = map[string]interface{}{"source": "driver"}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimRight(w.buf[:i], "\r")
		if len(line) > 0 {
			logf(zerolog.InfoLevel, driverFields, "%s", line)
		}
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}

func logf(level zerolog.Level, fields map[string]interface{}, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger == nil {
		return
	}
	ev := globalLogger.WithLevel(level)
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Msgf(format, v...)
}

func setWriterLocked(w io.Writer) {
	l := zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	globalLogger = &l
}

func closeLocked() {
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
	globalLogger = nil
}

func levelFor(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
