package backends

import (
	"fmt"
	"net/http"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Set bundles one client per backend.
type Set struct {
	Weather      ports.WeatherClient
	Geocoder     ports.GeocodingClient
	Encyclopedia ports.EncyclopediaClient
	Generative   ports.GenerativeClient
}

// NewSet builds every client from config, sharing one HTTP client.
func NewSet(cfg domain.Config, client *http.Client) (Set, error) {
	if client == nil {
		client = NewHTTPClientFromConfig(cfg)
	}
	generative, err := NewGenerative(cfg.GetGenerativeProvider(), cfg.Backends.Generative, client)
	if err != nil {
		return Set{}, err
	}
	return Set{
		Weather:      NewMetNo(cfg.Backends.Weather, client),
		Geocoder:     NewNominatim(cfg.Backends.Geocoding, client),
		Encyclopedia: NewWikipedia(cfg.Backends.Encyclopedia, cfg.Backends.Weather.UserAgent, client),
		Generative:   generative,
	}, nil
}

// NewGenerative picks the generative client for a provider name.
func NewGenerative(provider string, settings domain.GenerativeSettings, client *http.Client) (ports.GenerativeClient, error) {
	switch provider {
	case "", domain.GenerativeProviderGemini:
		return NewGemini(settings, client), nil
	case domain.GenerativeProviderOpenAI:
		return NewOpenAIChat(settings, client), nil
	default:
		return nil, fmt.Errorf("unsupported generative provider: %s", provider)
	}
}
