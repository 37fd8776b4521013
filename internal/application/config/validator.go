package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/metekarasubasi/notiva/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateChat(cfg.Chat); err != nil {
		return err
	}
	if err := validateHTTP(cfg.HTTP); err != nil {
		return err
	}
	if err := validateBackends(cfg.Backends); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateLogging(cfg.Logging); err != nil {
		return err
	}
	return cfg.ValidateConsistency()
}

func validateChat(chat domain.ChatSettings) error {
	if chat.HistorySize < 0 {
		return errors.New("chat.history_size must be > 0")
	}
	if chat.MaxAttempts < 0 {
		return errors.New("chat.max_attempts must be > 0")
	}
	if err := validateDuration("chat.backoff_base", chat.BackoffBase); err != nil {
		return err
	}
	return validateDuration("chat.error_cooldown", chat.ErrorCooldown)
}

func validateHTTP(http domain.HTTPSettings) error {
	for name, value := range map[string]string{
		"http.connect_timeout": http.ConnectTimeout,
		"http.read_timeout":    http.ReadTimeout,
		"http.write_timeout":   http.WriteTimeout,
	} {
		if err := validateDuration(name, value); err != nil {
			return err
		}
	}
	return nil
}

func validateBackends(b domain.BackendSettings) error {
	for name, endpoint := range map[string]string{
		"backends.weather.endpoint":      b.Weather.Endpoint,
		"backends.geocoding.endpoint":    b.Geocoding.Endpoint,
		"backends.encyclopedia.endpoint": b.Encyclopedia.Endpoint,
		"backends.generative.endpoint":   b.Generative.Endpoint,
	} {
		if endpoint == "" {
			continue
		}
		u, err := url.Parse(endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, endpoint)
		}
	}
	if b.Geocoding.RequestsPerSecond < 0 {
		return errors.New("backends.geocoding.requests_per_second must be >= 0")
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	if storage.CacheMaxEntries < 0 {
		return errors.New("storage.cache_max_entries must be >= 0")
	}
	return validateDuration("storage.cache_ttl", storage.CacheTTL)
}

func validateLogging(logging domain.LoggingSettings) error {
	switch strings.ToLower(strings.TrimSpace(logging.Level)) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", logging.Level)
	}
}

func validateDuration(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s invalid: %w", name, err)
	}
	if d < 0 {
		return fmt.Errorf("%s must not be negative", name)
	}
	return nil
}
