package domain

import (
	"fmt"
	"strings"
	"time"
)

// ResolveCredentials applies env overrides on top of file values.
// getenv is usually os.Getenv; an env value wins over the file when non-blank.
func (c *Config) ResolveCredentials(getenv func(string) string) Credentials {
	return Credentials{
		WeatherKey: firstNonBlank(
			lookupEnv(getenv, c.Credentials.WeatherAPIKeyEnv),
			lookupEnv(getenv, DefaultCredentialEnvWx),
			c.Credentials.WeatherAPIKey,
		),
		GenerativeKey: firstNonBlank(
			lookupEnv(getenv, c.Credentials.GenerativeAPIKeyEnv),
			lookupEnv(getenv, DefaultCredentialEnvGen),
			lookupEnv(getenv, FallbackCredentialEnv),
			c.Credentials.GenerativeAPIKey,
		),
	}
}

// SetCredential stores a key for a backend in the file section.
func (c *Config) SetCredential(backend Backend, key string) error {
	switch backend {
	case BackendWeather:
		c.Credentials.WeatherAPIKey = strings.TrimSpace(key)
	case BackendGenerativeChat:
		c.Credentials.GenerativeAPIKey = strings.TrimSpace(key)
	default:
		return fmt.Errorf("%s does not take a credential", backend)
	}
	return nil
}

// GetHistorySize returns the tracker capacity with default fallback.
func (c *Config) GetHistorySize() int {
	if c.Chat.HistorySize <= 0 {
		return DefaultHistorySize
	}
	return c.Chat.HistorySize
}

// GetMaxAttempts returns the generative attempt budget with default fallback.
func (c *Config) GetMaxAttempts() int {
	if c.Chat.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return c.Chat.MaxAttempts
}

// GetBackoffBase returns the linear backoff unit.
func (c *Config) GetBackoffBase() time.Duration {
	return parseDurationOr(c.Chat.BackoffBase, DefaultBackoffBase)
}

// GetErrorCooldown returns how long an errored backend stays unavailable.
func (c *Config) GetErrorCooldown() time.Duration {
	return parseDurationOr(c.Chat.ErrorCooldown, DefaultErrorCooldown)
}

// GetRoutingMode returns the configured mode, auto when unset or invalid.
func (c *Config) GetRoutingMode() RoutingMode {
	mode, err := ParseRoutingMode(c.Chat.Mode)
	if err != nil {
		return ModeAuto
	}
	return mode
}

// GetConnectTimeout returns the dial timeout.
func (c *Config) GetConnectTimeout() time.Duration {
	return parseDurationOr(c.HTTP.ConnectTimeout, DefaultConnectTimeout)
}

// GetReadTimeout returns the response header timeout.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDurationOr(c.HTTP.ReadTimeout, DefaultReadTimeout)
}

// GetWriteTimeout returns the request write budget.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDurationOr(c.HTTP.WriteTimeout, DefaultWriteTimeout)
}

// GetCacheTTL returns the geocode cache lifetime.
func (c *Config) GetCacheTTL() time.Duration {
	return parseDurationOr(c.Storage.CacheTTL, DefaultCacheTTL)
}

// GetCacheMaxEntries returns the maximum cache entries with default fallback
func (c *Config) GetCacheMaxEntries() int {
	if c.Storage.CacheMaxEntries <= 0 {
		return DefaultCacheMaxEntries
	}
	return c.Storage.CacheMaxEntries
}

// GetGenerativeProvider returns the provider name, gemini by default.
func (c *Config) GetGenerativeProvider() string {
	provider := strings.ToLower(strings.TrimSpace(c.Backends.Generative.Provider))
	if provider == "" {
		return GenerativeProviderGemini
	}
	return provider
}

// GetTranscriptDriver returns the transcript backend, sqlite by default.
func (c *Config) GetTranscriptDriver() string {
	driver := strings.ToLower(strings.TrimSpace(c.Storage.TranscriptDriver))
	if driver == "" {
		return TranscriptDriverSQLite
	}
	return driver
}

// ValidateConsistency checks cross-field rules that a YAML schema cannot express.
func (c *Config) ValidateConsistency() error {
	if _, err := ParseRoutingMode(c.Chat.Mode); err != nil {
		return err
	}
	switch c.GetGenerativeProvider() {
	case GenerativeProviderGemini, GenerativeProviderOpenAI:
	default:
		return fmt.Errorf("backends.generative.provider must be gemini|openai, got %s", c.Backends.Generative.Provider)
	}
	switch c.GetTranscriptDriver() {
	case TranscriptDriverSQLite, TranscriptDriverJSONL:
	default:
		return fmt.Errorf("storage.transcript_driver must be sqlite|jsonl, got %s", c.Storage.TranscriptDriver)
	}
	return nil
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func lookupEnv(getenv func(string) string, name string) string {
	if getenv == nil || name == "" {
		return ""
	}
	return getenv(name)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
