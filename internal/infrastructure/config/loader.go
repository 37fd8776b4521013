package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/metekarasubasi/notiva/assets"
	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/pkg/filesystem"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "NOTIVA_CONFIG"

var (
	defaultOnce sync.Once
	defaultCfg  domain.Config
	defaultErr  error
)

// FileLoader loads YAML configuration from ~/.notiva/config.yaml (overridable via NOTIVA_CONFIG).
type FileLoader struct {
	overridePath string
	getenv       func(string) string
}

// NewFileLoader builds a new loader. An empty path resolves from the environment.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path, getenv: os.Getenv}
}

// WithEnv swaps the environment lookup, mainly for tests.
func (l *FileLoader) WithEnv(getenv func(string) string) *FileLoader {
	l.getenv = getenv
	return l
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return expandPaths(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return expandPaths(hydrateDefaults(cfg)), nil
}

// Credentials implements ports.CredentialSource: env vars win over file values.
func (l *FileLoader) Credentials(ctx context.Context) (domain.Credentials, error) {
	cfg, err := l.Load(ctx)
	if err != nil {
		return domain.Credentials{}, err
	}
	return cfg.ResolveCredentials(l.getenv), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return ExpandPath(l.overridePath)
	}
	if custom := l.getenv(EnvConfigPath); custom != "" {
		return ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".notiva", "config.yaml")
}

// Save writes cfg to disk. Storage paths are written as given.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Backup copies the current file to <path>.bak and returns the backup path.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := path + ".bak"
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Reset overwrites the file with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := DefaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// DefaultConfig returns the embedded defaults, with storage paths unexpanded.
func DefaultConfig() domain.Config {
	defaultOnce.Do(func() {
		defaultErr = yaml.Unmarshal(assets.DefaultConfigYAML, &defaultCfg)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded default config: %v", defaultErr))
	}
	return defaultCfg
}

// ExpandPath resolves a leading ~/ against the user's home directory.
func ExpandPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if path == "~" {
		return filesystem.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := DefaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.Credentials.WeatherAPIKeyEnv == "" {
		cfg.Credentials.WeatherAPIKeyEnv = def.Credentials.WeatherAPIKeyEnv
	}
	if cfg.Credentials.GenerativeAPIKeyEnv == "" {
		cfg.Credentials.GenerativeAPIKeyEnv = def.Credentials.GenerativeAPIKeyEnv
	}

	fill(&cfg.Backends.Weather.Endpoint, def.Backends.Weather.Endpoint)
	fill(&cfg.Backends.Weather.UserAgent, def.Backends.Weather.UserAgent)
	fill(&cfg.Backends.Geocoding.Endpoint, def.Backends.Geocoding.Endpoint)
	fill(&cfg.Backends.Geocoding.Country, def.Backends.Geocoding.Country)
	fill(&cfg.Backends.Geocoding.UserAgent, def.Backends.Geocoding.UserAgent)
	if cfg.Backends.Geocoding.RequestsPerSecond == 0 {
		cfg.Backends.Geocoding.RequestsPerSecond = def.Backends.Geocoding.RequestsPerSecond
	}
	fill(&cfg.Backends.Encyclopedia.Endpoint, def.Backends.Encyclopedia.Endpoint)
	fill(&cfg.Backends.Generative.Provider, def.Backends.Generative.Provider)
	// endpoint and model defaults are provider specific; only gemini's live in the file
	if cfg.Backends.Generative.Provider == def.Backends.Generative.Provider {
		fill(&cfg.Backends.Generative.Endpoint, def.Backends.Generative.Endpoint)
		fill(&cfg.Backends.Generative.Model, def.Backends.Generative.Model)
	}

	fill(&cfg.HTTP.ConnectTimeout, def.HTTP.ConnectTimeout)
	fill(&cfg.HTTP.ReadTimeout, def.HTTP.ReadTimeout)
	fill(&cfg.HTTP.WriteTimeout, def.HTTP.WriteTimeout)

	if cfg.Chat.HistorySize == 0 {
		cfg.Chat.HistorySize = def.Chat.HistorySize
	}
	if cfg.Chat.MaxAttempts == 0 {
		cfg.Chat.MaxAttempts = def.Chat.MaxAttempts
	}
	fill(&cfg.Chat.BackoffBase, def.Chat.BackoffBase)
	fill(&cfg.Chat.ErrorCooldown, def.Chat.ErrorCooldown)
	fill(&cfg.Chat.Mode, def.Chat.Mode)

	fill(&cfg.Storage.TranscriptDriver, def.Storage.TranscriptDriver)
	fill(&cfg.Storage.TranscriptPath, def.Storage.TranscriptPath)
	fill(&cfg.Storage.CacheDir, def.Storage.CacheDir)
	fill(&cfg.Storage.CacheTTL, def.Storage.CacheTTL)
	if cfg.Storage.CacheMaxEntries == 0 {
		cfg.Storage.CacheMaxEntries = def.Storage.CacheMaxEntries
	}
	fill(&cfg.Logging.Level, def.Logging.Level)
	return cfg
}

func expandPaths(cfg domain.Config) domain.Config {
	cfg.Storage.TranscriptPath = ExpandPath(cfg.Storage.TranscriptPath)
	cfg.Storage.CacheDir = ExpandPath(cfg.Storage.CacheDir)
	cfg.Chat.RulesFile = ExpandPath(cfg.Chat.RulesFile)
	return cfg
}

func fill(field *string, fallback string) {
	if strings.TrimSpace(*field) == "" {
		*field = fallback
	}
}

var (
	_ ports.ConfigProvider   = (*FileLoader)(nil)
	_ ports.CredentialSource = (*FileLoader)(nil)
)
