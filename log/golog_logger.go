package log

import (
	"github.com/kataras/golog"
)

// GologLogger implements Logger on top of kataras/golog.
type GologLogger struct {
	logger *golog.Logger
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger wraps an existing golog.Logger.
func NewGologLogger(logger *golog.Logger) *GologLogger {
	return &GologLogger{logger: logger}
}

func (l *GologLogger) Debug(format string, v ...any) {
	l.logger.Debugf(format, v...)
}

func (l *GologLogger) Info(format string, v ...any) {
	l.logger.Infof(format, v...)
}

func (l *GologLogger) Warn(format string, v ...any) {
	l.logger.Warnf(format, v...)
}

func (l *GologLogger) Error(format string, v ...any) {
	l.logger.Errorf(format, v...)
}

// SetLevel sets the level on the underlying golog logger.
func (l *GologLogger) SetLevel(level Level) {
	switch level {
	case LevelDebug:
		l.logger.SetLevel("debug")
	case LevelInfo:
		l.logger.SetLevel("info")
	case LevelWarn:
		l.logger.SetLevel("warn")
	case LevelError:
		l.logger.SetLevel("error")
	case LevelNone:
		l.logger.SetLevel("disable")
	}
}
