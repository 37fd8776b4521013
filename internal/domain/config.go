package domain

// Config mirrors ~/.notiva/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Credentials         CredentialSettings `yaml:"credentials"`
	Backends            BackendSettings    `yaml:"backends"`
	HTTP                HTTPSettings       `yaml:"http"`
	Chat                ChatSettings       `yaml:"chat"`
	Storage             StorageSettings    `yaml:"storage"`
	Logging             LoggingSettings    `yaml:"logging"`
}

// CredentialSettings holds API keys and the env vars that override them.
type CredentialSettings struct {
	WeatherAPIKey       string `yaml:"weather_api_key"`
	WeatherAPIKeyEnv    string `yaml:"weather_api_key_env"`
	GenerativeAPIKey    string `yaml:"generative_api_key"`
	GenerativeAPIKeyEnv string `yaml:"generative_api_key_env"`
}

// BackendSettings groups per-backend endpoints.
type BackendSettings struct {
	Weather      WeatherSettings      `yaml:"weather"`
	Geocoding    GeocodingSettings    `yaml:"geocoding"`
	Encyclopedia EncyclopediaSettings `yaml:"encyclopedia"`
	Generative   GenerativeSettings   `yaml:"generative"`
}

// WeatherSettings configures the forecast API.
type WeatherSettings struct {
	Endpoint  string `yaml:"endpoint"`
	UserAgent string `yaml:"user_agent"`
}

// GeocodingSettings configures the place search API.
type GeocodingSettings struct {
	Endpoint          string  `yaml:"endpoint"`
	Country           string  `yaml:"country"`
	UserAgent         string  `yaml:"user_agent"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// EncyclopediaSettings configures the summary API.
type EncyclopediaSettings struct {
	Endpoint string `yaml:"endpoint"`
}

// GenerativeSettings configures the chat model.
type GenerativeSettings struct {
	Provider string `yaml:"provider"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// HTTPSettings are the client timeouts, as Go duration strings.
type HTTPSettings struct {
	ConnectTimeout string `yaml:"connect_timeout"`
	ReadTimeout    string `yaml:"read_timeout"`
	WriteTimeout   string `yaml:"write_timeout"`
}

// ChatSettings tunes history, retry and cooldown.
type ChatSettings struct {
	HistorySize   int    `yaml:"history_size"`
	MaxAttempts   int    `yaml:"max_attempts"`
	BackoffBase   string `yaml:"backoff_base"`
	ErrorCooldown string `yaml:"error_cooldown"`
	Mode          string `yaml:"mode"`
	RulesFile     string `yaml:"rules_file"`
}

// StorageSettings locates the transcript and the geocode cache.
type StorageSettings struct {
	TranscriptDriver string `yaml:"transcript_driver"`
	TranscriptPath   string `yaml:"transcript_path"`
	CacheDir         string `yaml:"cache_dir"`
	CacheTTL         string `yaml:"cache_ttl"`
	CacheMaxEntries  int    `yaml:"cache_max_entries"`
}

// LoggingSettings selects the log level.
type LoggingSettings struct {
	Level string `yaml:"level"`
}
