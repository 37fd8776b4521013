package backends

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metekarasubasi/notiva/internal/domain"
)

const forecastBody = `{
  "properties": {
    "timeseries": [
      {
        "time": "2024-06-01T12:00:00Z",
        "data": {
          "instant": {"details": {
            "air_temperature": 21.3, "relative_humidity": 64.2, "wind_speed": 4.1,
            "wind_from_direction": 190.5, "cloud_area_fraction": 12.5
          }},
          "next_1_hours": {
            "summary": {"symbol_code": "partlycloudy_day"},
            "details": {"precipitation_amount": 0.0}
          }
        }
      }
    ]
  }
}`

func testClient() *http.Client {
	return NewHTTPClient(time.Second, time.Second, time.Second)
}

func TestMetNo_Forecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "41.0100", r.URL.Query().Get("lat"))
		assert.Equal(t, "28.9700", r.URL.Query().Get("lon"))
		assert.Equal(t, "agent/1", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, forecastBody)
	}))
	defer srv.Close()

	client := NewMetNo(domain.WeatherSettings{Endpoint: srv.URL, UserAgent: "agent/1"}, testClient())
	result, err := client.Forecast(context.Background(), domain.Coordinates{Lat: 41.01, Lon: 28.97})

	require.NoError(t, err)
	require.True(t, result.Succeeded())
	require.NotNil(t, result.Forecast)
	assert.Equal(t, 21.3, *result.Forecast.AirTemperature)
	assert.Equal(t, 190.5, *result.Forecast.WindFromDirection)
	assert.Equal(t, 0.0, *result.Forecast.PrecipitationNextHr)
	assert.Equal(t, "partlycloudy_day", result.Forecast.SymbolCode)
	assert.Equal(t, "2024-06-01T12:00:00Z", result.Forecast.Time)
}

func TestMetNo_EmptySeriesAndErrors(t *testing.T) {
	status := http.StatusOK
	body := `{"properties":{"timeseries":[]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()
	client := NewMetNo(domain.WeatherSettings{Endpoint: srv.URL}, testClient())

	result, err := client.Forecast(context.Background(), domain.Coordinates{})
	require.NoError(t, err)
	assert.Nil(t, result.Forecast)

	status, body = http.StatusForbidden, "no"
	result, err = client.Forecast(context.Background(), domain.Coordinates{})
	require.NoError(t, err)
	assert.False(t, result.Succeeded())
	assert.Equal(t, http.StatusForbidden, result.StatusCode)

	status, body = http.StatusOK, "{not json"
	_, err = client.Forecast(context.Background(), domain.Coordinates{})
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestMetNo_MissingNextHour(t *testing.T) {
	f := parseForecast([]byte(`{"properties":{"timeseries":[{"data":{"instant":{"details":{"air_temperature":null}}}}]}}`))
	require.NotNil(t, f)
	assert.Nil(t, f.AirTemperature)
	assert.Nil(t, f.PrecipitationNextHr)
	assert.Empty(t, f.SymbolCode)
}

func TestNominatim_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "izmir, Turkey", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "1", q.Get("limit"))
		_, _ = io.WriteString(w, `[{"lat":"38.4192","lon":"27.1287","display_name":"İzmir, Türkiye"}]`)
	}))
	defer srv.Close()

	client := NewNominatim(domain.GeocodingSettings{Endpoint: srv.URL, RequestsPerSecond: 100}, testClient())
	places, err := client.Search(context.Background(), "izmir, Turkey")

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.InDelta(t, 38.4192, places[0].Lat, 1e-9)
	assert.InDelta(t, 27.1287, places[0].Lon, 1e-9)
	assert.Equal(t, "İzmir, Türkiye", places[0].DisplayName)
}

func TestNominatim_NonSuccessIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewNominatim(domain.GeocodingSettings{Endpoint: srv.URL, RequestsPerSecond: 100}, testClient())
	_, err := client.Search(context.Background(), "x")
	assert.ErrorContains(t, err, "429")
}

func TestNominatim_RateLimitHonoursContext(t *testing.T) {
	client := NewNominatim(domain.GeocodingSettings{Endpoint: "http://127.0.0.1:1", RequestsPerSecond: 0.001}, testClient())
	client.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := client.Search(ctx, "x")
	assert.Error(t, err)
}

func TestWikipedia_Summary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kara delik", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("redirect"))
		_, _ = io.WriteString(w, `{"title":"Kara delik","extract":"Kara delik, uzay-zamanda...","description":"astronomik cisim"}`)
	}))
	defer srv.Close()

	client := NewWikipedia(domain.EncyclopediaSettings{Endpoint: srv.URL + "/"}, "", testClient())
	result, err := client.Summary(context.Background(), "kara delik")

	require.NoError(t, err)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Kara delik", result.Summary.Title)
	assert.Equal(t, "astronomik cisim", result.Summary.Description)
}

func TestWikipedia_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewWikipedia(domain.EncyclopediaSettings{Endpoint: srv.URL}, "", testClient())
	result, err := client.Summary(context.Background(), "yokboylebirsey")

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Nil(t, result.Summary)
}

func TestGemini_GenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.RawQuery)

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Contents, 1) {
			assert.Equal(t, "Human: selam\nAssistant:", req.Contents[0].Parts[0].Text)
		}

		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Mer"},{"text":"haba!"}]}}]}`)
	}))
	defer srv.Close()

	g := NewGemini(domain.GenerativeSettings{Endpoint: srv.URL, Model: "gemini-test"}, testClient())
	_, err := g.GenerateContent(context.Background(), "x")
	assert.ErrorIs(t, err, errNotInitialized)

	require.ErrorIs(t, g.Initialize(" "), domain.ErrCredentialMissing)
	require.NoError(t, g.Initialize("secret"))

	text, err := g.GenerateContent(context.Background(), "Human: selam\nAssistant:")
	require.NoError(t, err)
	assert.Equal(t, "Merhaba!", text)
}

func TestGemini_Failures(t *testing.T) {
	status := http.StatusServiceUnavailable
	body := `{"error":{"message":"The model is overloaded."}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	g := NewGemini(domain.GenerativeSettings{Endpoint: srv.URL}, testClient())
	require.NoError(t, g.Initialize("k"))

	_, err := g.GenerateContent(context.Background(), "p")
	var backendErr *domain.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, http.StatusServiceUnavailable, backendErr.StatusCode)
	assert.Contains(t, err.Error(), "The model is overloaded.")

	status, body = http.StatusOK, `{"candidates":[]}`
	_, err = g.GenerateContent(context.Background(), "p")
	assert.ErrorContains(t, err, "Empty response")
}

func TestGemini_TransportErrorOmitsKey(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := NewGemini(domain.GenerativeSettings{Endpoint: srv.URL}, &http.Client{Timeout: 50 * time.Millisecond})
	require.NoError(t, g.Initialize("SUPERSECRETKEY"))

	_, err := g.GenerateContent(context.Background(), "p")
	require.Error(t, err)
	var backendErr *domain.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.NotContains(t, err.Error(), "SUPERSECRETKEY")
	assert.Contains(t, err.Error(), "generateContent")
}

func TestOpenAIChat_GenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Ankara."}}]}`)
	}))
	defer srv.Close()

	o := NewOpenAIChat(domain.GenerativeSettings{Endpoint: srv.URL, Model: "m"}, testClient())
	_, err := o.GenerateContent(context.Background(), "p")
	assert.ErrorIs(t, err, errNotInitialized)

	require.NoError(t, o.Initialize("sk-test"))
	text, err := o.GenerateContent(context.Background(), "Türkiye'nin başkenti?")
	require.NoError(t, err)
	assert.Equal(t, "Ankara.", text)
}

func TestNewSet(t *testing.T) {
	var cfg domain.Config
	set, err := NewSet(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerativeProviderGemini, set.Generative.Name())

	cfg.Backends.Generative.Provider = "openai"
	set, err = NewSet(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerativeProviderOpenAI, set.Generative.Name())

	_, err = NewGenerative("bard", domain.GenerativeSettings{}, nil)
	assert.Error(t, err)
}
