package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configapp "github.com/metekarasubasi/notiva/internal/application/config"
	"github.com/metekarasubasi/notiva/internal/domain"
)

func noEnv(string) string { return "" }

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, configapp.Validate(cfg))
	assert.Equal(t, domain.DefaultHistorySize, cfg.GetHistorySize())
	assert.Equal(t, domain.DefaultMaxAttempts, cfg.GetMaxAttempts())
	assert.Equal(t, domain.DefaultErrorCooldown, cfg.GetErrorCooldown())
	assert.Equal(t, domain.DefaultGeminiModel, cfg.Backends.Generative.Model)
	assert.Equal(t, domain.ModeAuto, cfg.GetRoutingMode())
}

func TestLoad_WritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path).WithEnv(noEnv)

	cfg, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "1", cfg.ConfigFormatVersion)
	assert.True(t, filepath.IsAbs(cfg.Storage.TranscriptPath), "transcript path expanded: %s", cfg.Storage.TranscriptPath)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestLoad_HydratesMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chat:\n  history_size: 9\n"), 0o600))

	cfg, err := NewFileLoader(path).WithEnv(noEnv).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Chat.HistorySize)
	assert.Equal(t, domain.DefaultMaxAttempts, cfg.Chat.MaxAttempts)
	assert.Equal(t, domain.DefaultWeatherEndpoint, cfg.Backends.Weather.Endpoint)
	assert.Equal(t, domain.TranscriptDriverSQLite, cfg.Storage.TranscriptDriver)
}

func TestLoad_KeepsOpenAIEndpointBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backends:\n  generative:\n    provider: openai\n"), 0o600))

	cfg, err := NewFileLoader(path).WithEnv(noEnv).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.GenerativeProviderOpenAI, cfg.Backends.Generative.Provider)
	assert.Empty(t, cfg.Backends.Generative.Endpoint)
	assert.Empty(t, cfg.Backends.Generative.Model)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chat: [unclosed"), 0o600))

	_, err := NewFileLoader(path).WithEnv(noEnv).Load(context.Background())

	assert.Error(t, err)
}

func TestPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	loader := NewFileLoader("").WithEnv(func(key string) string {
		if key == EnvConfigPath {
			return want
		}
		return ""
	})

	assert.Equal(t, want, loader.Path())
}

func TestCredentials_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path).WithEnv(func(key string) string {
		if key == domain.FallbackCredentialEnv {
			return "env-gen"
		}
		return ""
	})
	cfg := DefaultConfig()
	require.NoError(t, cfg.SetCredential(domain.BackendWeather, "file-wx"))
	require.NoError(t, cfg.SetCredential(domain.BackendGenerativeChat, "file-gen"))
	require.NoError(t, loader.Save(cfg))

	creds, err := loader.Credentials(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "file-wx", creds.WeatherKey)
	assert.Equal(t, "env-gen", creds.GenerativeKey)
}

func TestBackupAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path).WithEnv(noEnv)
	cfg := DefaultConfig()
	cfg.Chat.HistorySize = 12
	require.NoError(t, loader.Save(cfg))

	backup, err := loader.Backup()
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	reset, err := loader.Reset()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHistorySize, reset.Chat.HistorySize)

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHistorySize, loaded.Chat.HistorySize)

	saved, err := NewFileLoader(backup).WithEnv(noEnv).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, saved.Chat.HistorySize)
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/abs/x", ExpandPath("/abs/x"))
	assert.True(t, filepath.IsAbs(ExpandPath("~/x")) || ExpandPath("~/x") == "x")
	assert.Equal(t, filepath.Join("a", "b"), ExpandPath("a/./b"))
}
