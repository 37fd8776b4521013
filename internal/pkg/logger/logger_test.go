package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharmLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Debug("hidden", nil)
	l.Info("hidden too", map[string]interface{}{"a": 1})
	assert.Empty(t, buf.String())

	l.Warn("shown", map[string]interface{}{"backend": "weather"})
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "backend=weather")
}

func TestCharmLogger_ErrorIncludesErr(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")

	l.Error("request failed", errors.New("boom"), map[string]interface{}{"status": 503})

	out := buf.String()
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "status=503")
}

func TestKeyvals_Sorted(t *testing.T) {
	got := keyvals(map[string]interface{}{"b": 2, "a": 1})
	assert.Equal(t, []interface{}{"a", 1, "b", 2}, got)
	assert.Nil(t, keyvals(nil))
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty")
	l.Info("hidden", nil)
	assert.Empty(t, buf.String())
}
