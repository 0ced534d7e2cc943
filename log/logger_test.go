package log

import (
	"bytes"
	"testing"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
)

func TestStdLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewCustomLogger(&buf, LevelWarn)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	assert.Contains(t, out, "[ERROR] shown 4")
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NoOpLogger{}
	// Must not panic.
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	SetDefault(NoOpLogger{})
	assert.IsType(t, NoOpLogger{}, Default())
}

func TestGologLogger(t *testing.T) {
	var buf bytes.Buffer
	gl := golog.New()
	gl.SetOutput(&buf)

	l := NewGologLogger(gl)
	l.SetLevel(LevelInfo)
	l.Info("assembled %d nodes", 3)

	assert.Contains(t, buf.String(), "assembled 3 nodes")
}
