package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metekarasubasi/notiva/internal/domain"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

// TestConfig_ResolveCredentials tests env-over-file precedence
func TestConfig_ResolveCredentials(t *testing.T) {
	tests := []struct {
		name   string
		config domain.Config
		env    map[string]string
		want   domain.Credentials
	}{
		{
			name: "file values when env empty",
			config: domain.Config{Credentials: domain.CredentialSettings{
				WeatherAPIKey:    "wx-file",
				GenerativeAPIKey: "gen-file",
			}},
			want: domain.Credentials{WeatherKey: "wx-file", GenerativeKey: "gen-file"},
		},
		{
			name: "custom env var wins",
			config: domain.Config{Credentials: domain.CredentialSettings{
				GenerativeAPIKey:    "gen-file",
				GenerativeAPIKeyEnv: "MY_KEY",
			}},
			env:  map[string]string{"MY_KEY": "gen-env"},
			want: domain.Credentials{GenerativeKey: "gen-env"},
		},
		{
			name:   "fallback env var",
			config: domain.Config{},
			env:    map[string]string{domain.FallbackCredentialEnv: "from-gemini-env"},
			want:   domain.Credentials{GenerativeKey: "from-gemini-env"},
		},
		{
			name: "blank values are absent",
			config: domain.Config{Credentials: domain.CredentialSettings{
				WeatherAPIKey: "   ",
			}},
			env:  map[string]string{domain.DefaultCredentialEnvWx: ""},
			want: domain.Credentials{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.ResolveCredentials(envMap(tt.env))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_SetCredential(t *testing.T) {
	var cfg domain.Config
	require.NoError(t, cfg.SetCredential(domain.BackendWeather, " key "))
	assert.Equal(t, "key", cfg.Credentials.WeatherAPIKey)

	require.NoError(t, cfg.SetCredential(domain.BackendGenerativeChat, "g"))
	assert.Equal(t, "g", cfg.Credentials.GenerativeAPIKey)

	assert.Error(t, cfg.SetCredential(domain.BackendEncyclopedia, "x"))
}

func TestConfig_DurationDefaults(t *testing.T) {
	var cfg domain.Config
	assert.Equal(t, domain.DefaultErrorCooldown, cfg.GetErrorCooldown())
	assert.Equal(t, domain.DefaultBackoffBase, cfg.GetBackoffBase())
	assert.Equal(t, domain.DefaultConnectTimeout, cfg.GetConnectTimeout())
	assert.Equal(t, domain.DefaultHistorySize, cfg.GetHistorySize())
	assert.Equal(t, domain.DefaultMaxAttempts, cfg.GetMaxAttempts())

	cfg.Chat.ErrorCooldown = "5m"
	cfg.Chat.BackoffBase = "not-a-duration"
	assert.Equal(t, 5*time.Minute, cfg.GetErrorCooldown())
	assert.Equal(t, domain.DefaultBackoffBase, cfg.GetBackoffBase())
}

func TestConfig_ValidateConsistency(t *testing.T) {
	cfg := domain.Config{}
	require.NoError(t, cfg.ValidateConsistency())

	cfg.Chat.Mode = "sideways"
	assert.Error(t, cfg.ValidateConsistency())

	cfg.Chat.Mode = "weather"
	cfg.Backends.Generative.Provider = "bard"
	assert.Error(t, cfg.ValidateConsistency())

	cfg.Backends.Generative.Provider = "OpenAI"
	cfg.Storage.TranscriptDriver = "postgres"
	assert.Error(t, cfg.ValidateConsistency())
}

func TestBackendStatus_InCooldown(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	status := domain.BackendStatus{HasRecentError: true, LastErrorTime: now}

	assert.True(t, status.InCooldown(now.Add(29*time.Minute), 30*time.Minute))
	assert.False(t, status.InCooldown(now.Add(30*time.Minute), 30*time.Minute))
	assert.False(t, domain.BackendStatus{}.InCooldown(now, 30*time.Minute))
}

func TestParseRoutingMode(t *testing.T) {
	mode, err := domain.ParseRoutingMode("")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeAuto, mode)

	mode, err = domain.ParseRoutingMode(" Weather ")
	require.NoError(t, err)
	pinned, ok := mode.Pinned()
	assert.True(t, ok)
	assert.Equal(t, domain.ClassificationWeather, pinned)

	_, err = domain.ParseRoutingMode("fax")
	assert.Error(t, err)
}

func TestBackendError_IsUnavailable(t *testing.T) {
	err := &domain.BackendError{Backend: domain.BackendEncyclopedia, StatusCode: 503}
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "503")
}
