// Package logging provides the leveled, optionally colored logger used by
// every other package. It is a thin printf-style facade over go-hclog with
// progress on stdout, errors on stderr, and an optional append-only file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/backmassage/slidereel/internal/config"
	"github.com/backmassage/slidereel/internal/term"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu    sync.Mutex
	out   hclog.Logger
	err   hclog.Logger
	file  hclog.Logger
	fh    *os.File
	runID string
}

// NewLogger initializes colors from cfg and optionally opens cfg.LogFile.
// Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return New(cfg, os.Stdout, os.Stderr)
}

// New is NewLogger with explicit destinations for progress and error output.
func New(cfg *config.Config, stdout, stderr io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}
	color := hclog.ColorOff
	if term.Enabled() {
		color = hclog.ForceColor
	}

	l := &Logger{
		runID: uuid.NewString(),
		out: hclog.New(&hclog.LoggerOptions{
			Level:      level,
			Output:     stdout,
			Color:      color,
			TimeFormat: timeFormat,
		}),
		err: hclog.New(&hclog.LoggerOptions{
			Level:      hclog.Warn,
			Output:     stderr,
			Color:      color,
			TimeFormat: timeFormat,
		}),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.fh = f
		// The run id separates consecutive runs appended to the same file.
		l.file = hclog.New(&hclog.LoggerOptions{
			Level:      hclog.Debug,
			Output:     f,
			Color:      hclog.ColorOff,
			TimeFormat: timeFormat,
		}).With("run", l.runID)
	}
	return l, nil
}

// RunID identifies this process's lines in a shared log file.
func (l *Logger) RunID() string { return l.runID }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fh != nil {
		err := l.fh.Close()
		l.fh = nil
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) sink() hclog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file
}

// Info logs progress at INFO level on stdout.
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.out.Info(msg)
	if f := l.sink(); f != nil {
		f.Info(msg)
	}
}

// Success logs a completed step at INFO level, tagged status=ok.
func (l *Logger) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.out.Info(msg, "status", "ok")
	if f := l.sink(); f != nil {
		f.Info(msg, "status", "ok")
	}
}

// Warn logs at WARN level on stderr.
func (l *Logger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.err.Warn(msg)
	if f := l.sink(); f != nil {
		f.Warn(msg)
	}
}

// Error logs at ERROR level on stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.err.Error(msg)
	if f := l.sink(); f != nil {
		f.Error(msg)
	}
}

// Debug logs at DEBUG level; shown on stdout only with --verbose but always
// written to the log file.
func (l *Logger) Debug(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.out.Debug(msg)
	if f := l.sink(); f != nil {
		f.Debug(msg)
	}
}
