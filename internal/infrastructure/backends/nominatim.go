package backends

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Nominatim resolves place names through OpenStreetMap's search API.
// Requests are throttled to the public instance's usage policy.
type Nominatim struct {
	endpoint  string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewNominatim creates a geocoding client. rps <= 0 means one request per second.
func NewNominatim(settings domain.GeocodingSettings, client *http.Client) *Nominatim {
	rps := settings.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Nominatim{
		endpoint:  orDefault(settings.Endpoint, domain.DefaultGeocodingEndpoint),
		userAgent: orDefault(settings.UserAgent, domain.DefaultUserAgent),
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Search returns at most one place for query.
func (n *Nominatim) Search(ctx context.Context, query string) ([]domain.Place, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	resp, err := do(ctx, n.client, http.MethodGet, n.endpoint+"?"+params.Encode(), nil, map[string]string{
		"User-Agent": n.userAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("geocode %q: status %d", query, resp.status)
	}

	var places []domain.Place
	for _, hit := range gjson.ParseBytes(resp.body).Array() {
		lat, lon := hit.Get("lat"), hit.Get("lon")
		if !lat.Exists() || !lon.Exists() {
			continue
		}
		places = append(places, domain.Place{
			Coordinates: domain.Coordinates{Lat: lat.Float(), Lon: lon.Float()},
			DisplayName: hit.Get("display_name").String(),
		})
	}
	return places, nil
}

var _ ports.GeocodingClient = (*Nominatim)(nil)
