// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (availability, history, classification and the query
// orchestrator) depends only on these interfaces. Concrete adapters for the
// forecast, geocoding, encyclopedia and generative APIs live under
// internal/infrastructure and are wired together in internal/app.
package ports

import (
	"context"
	"time"

	"github.com/metekarasubasi/notiva/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.notiva/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CredentialSource supplies the API keys known at startup.
type CredentialSource interface {
	Credentials(context.Context) (domain.Credentials, error)
}

// WeatherClient fetches a point forecast.
// A non-2xx reply is reported through WeatherResult.StatusCode, not as an error.
type WeatherClient interface {
	Forecast(ctx context.Context, at domain.Coordinates) (domain.WeatherResult, error)
}

// GeocodingClient resolves a free-text place query to candidate positions.
type GeocodingClient interface {
	Search(ctx context.Context, query string) ([]domain.Place, error)
}

// EncyclopediaClient fetches a page summary by title.
// A non-2xx reply is reported through SummaryResult.StatusCode, not as an error.
type EncyclopediaClient interface {
	Summary(ctx context.Context, title string) (domain.SummaryResult, error)
}

// GenerativeClient wraps a text generation model.
// Initialize must be called with the credential before GenerateContent.
type GenerativeClient interface {
	Name() string
	Initialize(credential string) error
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// TranscriptRepository persists every exchanged message.
type TranscriptRepository interface {
	Insert(ctx context.Context, msg domain.Message) error
	List(ctx context.Context, limit int) ([]domain.Message, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// LocationCache memoizes geocoding results by normalized query.
type LocationCache interface {
	Get(key string) (domain.Coordinates, bool)
	Set(key string, value domain.Coordinates) error
}

// Clock abstracts wall time so cooldowns can be tested.
type Clock interface {
	Now() time.Time
}

// Sleeper waits between retry attempts. It returns early with ctx.Err()
// when the context is cancelled.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
