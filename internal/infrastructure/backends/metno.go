package backends

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// MetNo queries the met.no locationforecast compact endpoint.
type MetNo struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewMetNo creates a forecast client. Blank settings use the defaults.
func NewMetNo(settings domain.WeatherSettings, client *http.Client) *MetNo {
	return &MetNo{
		endpoint:  orDefault(settings.Endpoint, domain.DefaultWeatherEndpoint),
		userAgent: orDefault(settings.UserAgent, domain.DefaultUserAgent),
		client:    client,
	}
}

// Forecast fetches the first time-series entry for a position.
func (m *MetNo) Forecast(ctx context.Context, at domain.Coordinates) (domain.WeatherResult, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(at.Lat, 'f', 4, 64))
	query.Set("lon", strconv.FormatFloat(at.Lon, 'f', 4, 64))

	resp, err := do(ctx, m.client, http.MethodGet, m.endpoint+"?"+query.Encode(), nil, map[string]string{
		"User-Agent": m.userAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return domain.WeatherResult{}, &domain.BackendError{Backend: domain.BackendWeather, Err: err}
	}
	result := domain.WeatherResult{StatusCode: resp.status}
	if !resp.ok() {
		return result, nil
	}
	if !gjson.ValidBytes(resp.body) {
		return result, &domain.BackendError{Backend: domain.BackendWeather, StatusCode: resp.status, Err: errors.New("invalid JSON body")}
	}
	result.Forecast = parseForecast(resp.body)
	return result, nil
}

func parseForecast(body []byte) *domain.Forecast {
	first := gjson.GetBytes(body, "properties.timeseries.0")
	if !first.Exists() {
		return nil
	}
	details := first.Get("data.instant.details")
	nextHour := first.Get("data.next_1_hours")
	return &domain.Forecast{
		Time:                first.Get("time").String(),
		AirTemperature:      floatPtr(details.Get("air_temperature")),
		RelativeHumidity:    floatPtr(details.Get("relative_humidity")),
		WindSpeed:           floatPtr(details.Get("wind_speed")),
		WindFromDirection:   floatPtr(details.Get("wind_from_direction")),
		CloudAreaFraction:   floatPtr(details.Get("cloud_area_fraction")),
		PrecipitationNextHr: floatPtr(nextHour.Get("details.precipitation_amount")),
		SymbolCode:          nextHour.Get("summary.symbol_code").String(),
	}
}

func floatPtr(r gjson.Result) *float64 {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	v := r.Float()
	return &v
}

var _ ports.WeatherClient = (*MetNo)(nil)
