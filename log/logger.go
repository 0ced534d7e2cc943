package log

import (
	"io"
	"log"
	"os"
)

// Level represents logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone disables all logging.
	LevelNone
)

// Logger is the logging interface used throughout the module.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// StdLogger implements Logger using the standard library log package.
type StdLogger struct {
	logger *log.Logger
	level  Level
}

// NewStdLogger creates a logger writing to stderr.
func NewStdLogger(level Level) *StdLogger {
	return &StdLogger{
		logger: log.New(os.Stderr, "[policygraph] ", log.LstdFlags),
		level:  level,
	}
}

// NewCustomLogger creates a logger with a custom output writer.
func NewCustomLogger(out io.Writer, level Level) *StdLogger {
	return &StdLogger{
		logger: log.New(out, "[policygraph] ", log.LstdFlags),
		level:  level,
	}
}

func (l *StdLogger) Debug(format string, v ...any) {
	if l.level <= LevelDebug {
		l.logger.Printf("[DEBUG] "+format, v...)
	}
}

func (l *StdLogger) Info(format string, v ...any) {
	if l.level <= LevelInfo {
		l.logger.Printf("[INFO] "+format, v...)
	}
}

func (l *StdLogger) Warn(format string, v ...any) {
	if l.level <= LevelWarn {
		l.logger.Printf("[WARN] "+format, v...)
	}
}

func (l *StdLogger) Error(format string, v ...any) {
	if l.level <= LevelError {
		l.logger.Printf("[ERROR] "+format, v...)
	}
}

// NoOpLogger discards all messages.
type NoOpLogger struct{}

func (NoOpLogger) Debug(format string, v ...any) {}
func (NoOpLogger) Info(format string, v ...any)  {}
func (NoOpLogger) Warn(format string, v ...any)  {}
func (NoOpLogger) Error(format string, v ...any) {}

// Package-level logger, info level by default.
var defaultLogger Logger = NewStdLogger(LevelInfo)

// SetDefault replaces the package-level logger.
func SetDefault(logger Logger) {
	defaultLogger = logger
}

// Default returns the current package-level logger.
func Default() Logger {
	return defaultLogger
}
