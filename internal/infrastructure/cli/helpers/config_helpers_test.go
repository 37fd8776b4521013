package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metekarasubasi/notiva/internal/domain"
)

func TestParseYAMLValue(t *testing.T) {
	assert.Equal(t, 7, ParseYAMLValue("7"))
	assert.Equal(t, true, ParseYAMLValue("true"))
	assert.Equal(t, "30m", ParseYAMLValue("30m"))
	assert.Equal(t, "[oops", ParseYAMLValue("[oops"))
}

func TestSetAndTraverseNestedMap(t *testing.T) {
	root := map[string]interface{}{"chat": "scalar"}

	require.True(t, SetNestedMapValue(root, []string{"chat", "history_size"}, 8))
	require.True(t, SetNestedMapValue(root, []string{"logging", "level"}, "debug"))
	assert.False(t, SetNestedMapValue(root, nil, 1))

	value, ok := TraverseNestedMap(root, []string{"chat", "history_size"})
	require.True(t, ok)
	assert.Equal(t, 8, value)

	_, ok = TraverseNestedMap(root, []string{"logging", "missing"})
	assert.False(t, ok)
	_, ok = TraverseNestedMap(root, []string{"logging", "level", "deeper"})
	assert.False(t, ok)
}

func TestConfigMapRoundTripKeepsEdits(t *testing.T) {
	cfg := domain.Config{Chat: domain.ChatSettings{HistorySize: 5, Mode: "auto"}}
	cfgMap, err := ConfigToMap(cfg)
	require.NoError(t, err)

	require.True(t, SetNestedMapValue(cfgMap, []string{"chat", "mode"}, "weather"))
	updated, err := MapToConfig(cfgMap)

	require.NoError(t, err)
	assert.Equal(t, "weather", updated.Chat.Mode)
	assert.Equal(t, 5, updated.Chat.HistorySize)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "****", MaskSecret("abc"))
	assert.Equal(t, "****6789", MaskSecret("123456789"))
}
