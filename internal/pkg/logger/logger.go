package logger

import (
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// CharmLogger adapts charmbracelet/log to the map-fields Logger port.
type CharmLogger struct {
	inner *log.Logger
}

// New creates a logger writing to w at the named level (debug|info|warn|error).
// Unknown levels fall back to warn.
func New(w io.Writer, level string) *CharmLogger {
	inner := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "notiva",
	})
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = log.WarnLevel
	}
	inner.SetLevel(parsed)
	return &CharmLogger{inner: inner}
}

// Nop discards everything.
func Nop() *CharmLogger {
	return New(io.Discard, "error")
}

func (l *CharmLogger) Debug(msg string, fields map[string]interface{}) {
	l.inner.Debug(msg, keyvals(fields)...)
}

func (l *CharmLogger) Info(msg string, fields map[string]interface{}) {
	l.inner.Info(msg, keyvals(fields)...)
}

func (l *CharmLogger) Warn(msg string, fields map[string]interface{}) {
	l.inner.Warn(msg, keyvals(fields)...)
}

func (l *CharmLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := keyvals(fields)
	if err != nil {
		kv = append([]interface{}{"err", err}, kv...)
	}
	l.inner.Error(msg, kv...)
}

// keyvals flattens fields in key order so output is stable.
func keyvals(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
