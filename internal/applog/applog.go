// Package applog provides a best-effort diagnostic logger for the TUI
// process. Since the terminal is owned by the render scheduler while the
// alternate screen is active, this logger never writes to stdout/stderr —
// it writes to a file, or discards silently if none is configured,
// following the same "never fatal to the UI" policy as telemetry and
// snapshot I/O.
package applog

import (
	"io"
	"log"
	"os"
)

// Logger wraps the standard library logger with a discard fallback.
type Logger struct {
	*log.Logger
	file *os.File
}

// Open creates a logger appending to path. An empty path, or one that
// can't be opened, yields a logger that discards everything.
func Open(path string) *Logger {
	if path == "" {
		return &Logger{Logger: log.New(io.Discard, "", 0)}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &Logger{Logger: log.New(io.Discard, "", 0)}
	}
	return &Logger{
		Logger: log.New(f, "", log.LstdFlags|log.Lmicroseconds),
		file:   f,
	}
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
