package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Chat defaults
const (
	// DefaultHistorySize is how many recent messages the tracker keeps
	DefaultHistorySize = 5
	// DefaultMaxAttempts is the generative chat attempt budget
	DefaultMaxAttempts = 2
	// DefaultBackoffBase is multiplied by the attempt number between attempts
	DefaultBackoffBase = time.Second
	// DefaultErrorCooldown keeps an errored backend out of routing
	DefaultErrorCooldown = 30 * time.Minute
)

// HTTP defaults
const (
	DefaultConnectTimeout = 30 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
)

// Backend defaults
const (
	DefaultWeatherEndpoint      = "https://api.met.no/weatherapi/locationforecast/2.0/compact"
	DefaultGeocodingEndpoint    = "https://nominatim.openstreetmap.org/search"
	DefaultEncyclopediaEndpoint = "https://tr.wikipedia.org/api/rest_v1/page/summary"
	DefaultGeminiEndpoint       = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel          = "gemini-1.5-flash"
	DefaultUserAgent            = "Notiva/1.0 (ismailmetekarasubasi@gmail.com)"
	DefaultGeocodeCountry       = "Turkey"
	DefaultCity                 = "istanbul"
)

// Generative providers
const (
	GenerativeProviderGemini = "gemini"
	GenerativeProviderOpenAI = "openai"
)

// Storage defaults
const (
	TranscriptDriverSQLite  = "sqlite"
	TranscriptDriverJSONL   = "jsonl"
	DefaultCacheTTL         = 24 * time.Hour
	DefaultCacheMaxEntries  = 100
	DefaultTranscriptLimit  = 20
	DefaultCredentialEnvWx  = "NOTIVA_WEATHER_API_KEY"
	DefaultCredentialEnvGen = "NOTIVA_GEMINI_API_KEY"
	FallbackCredentialEnv   = "GEMINI_API_KEY"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
