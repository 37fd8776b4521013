// Package query orchestrates one chat turn: classify the message, call the
// chosen backend and turn every outcome into a reply.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/metekarasubasi/notiva/internal/application/classify"
	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/pkg/turkish"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Registry is the availability state the orchestrator reads and updates.
type Registry interface {
	classify.Availability
	MarkError(domain.Backend)
	Credential(domain.Backend) string
}

// History is the recent-message buffer shared with the classifier.
type History interface {
	classify.History
	Append(domain.Message)
	Recent() []domain.Message
	Clear()
}

// Service orchestrates the query lifecycle end-to-end.
type Service struct {
	Registry     Registry
	History      History
	Classifier   *classify.Classifier
	Weather      ports.WeatherClient
	Geocoder     ports.GeocodingClient
	Locations    ports.LocationCache
	Encyclopedia ports.EncyclopediaClient
	Generative   ports.GenerativeClient
	Transcript   ports.TranscriptRepository
	Clock        ports.Clock
	Sleeper      ports.Sleeper
	Logger       ports.Logger

	// MaxAttempts bounds generative calls per message.
	MaxAttempts int
	// BackoffBase is multiplied by the attempt number between attempts.
	BackoffBase time.Duration
	// Country is appended to geocoding queries.
	Country string

	loading atomic.Bool
	modeMu  sync.RWMutex
	mode    domain.RoutingMode
}

// Loading reports whether a HandleUserMessage call is in flight.
func (s *Service) Loading() bool {
	return s.loading.Load()
}

// Mode returns the current routing mode.
func (s *Service) Mode() domain.RoutingMode {
	s.modeMu.RLock()
	defer s.modeMu.RUnlock()
	if s.mode == "" {
		return domain.ModeAuto
	}
	return s.mode
}

// SetMode switches routing and starts a fresh conversation.
func (s *Service) SetMode(mode domain.RoutingMode) {
	s.modeMu.Lock()
	s.mode = mode
	s.modeMu.Unlock()
	s.History.Clear()
	s.Logger.Info("routing mode changed", map[string]interface{}{"mode": string(mode)})
}

// Resume seeds the history buffer from the persisted transcript.
func (s *Service) Resume(ctx context.Context, limit int) (int, error) {
	if s.Transcript == nil {
		return 0, nil
	}
	msgs, err := s.Transcript.List(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("load transcript: %w", err)
	}
	for _, msg := range msgs {
		s.History.Append(msg)
	}
	return len(msgs), nil
}

// Route decides how text will be answered without calling any backend.
func (s *Service) Route(text string) classify.Decision {
	if pinned, ok := s.Mode().Pinned(); ok {
		return classify.Decision{Classification: pinned}
	}
	return s.classifier().Classify(text, s.Registry, s.History)
}

// HandleUserMessage records text, answers it and records the reply.
// Only one call may be in flight; a concurrent call gets ErrQueryInFlight.
func (s *Service) HandleUserMessage(ctx context.Context, text string) (domain.Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Exchange{}, domain.ErrEmptyMessage
	}
	if !s.loading.CompareAndSwap(false, true) {
		return domain.Exchange{}, domain.ErrQueryInFlight
	}
	defer s.loading.Store(false)

	userMsg := domain.NewMessage(text, true, s.Clock.Now())
	s.History.Append(userMsg)
	s.persist(ctx, userMsg)

	decision := s.Route(text)
	resp := s.Dispatch(ctx, text, decision)

	botMsg := domain.NewMessage(resp.Text, false, s.Clock.Now())
	s.History.Append(botMsg)
	s.persist(ctx, botMsg)

	return domain.Exchange{
		User:           userMsg,
		Reply:          botMsg,
		Classification: decision.Classification,
		Succeeded:      resp.Succeeded,
	}, nil
}

// Dispatch runs the handler for a decision.
func (s *Service) Dispatch(ctx context.Context, text string, decision classify.Decision) domain.BackendResponse {
	switch decision.Classification {
	case domain.ClassificationWeather:
		return s.QueryWeather(ctx, text)
	case domain.ClassificationEncyclopedia:
		return s.QueryEncyclopedia(ctx, text)
	case domain.ClassificationGenerativeChat:
		return s.QueryGenerativeChat(ctx, text)
	default:
		return domain.BackendResponse{Text: decision.Reply(), Succeeded: decision.Matched}
	}
}

// QueryWeather answers with the current forecast for the city named in text.
// Weather failures never mark the backend as errored.
func (s *Service) QueryWeather(ctx context.Context, text string) domain.BackendResponse {
	city := ExtractCity(text)
	coords, err := s.coordinates(ctx, city)
	if err != nil {
		s.Logger.Warn("geocoding failed", map[string]interface{}{"city": city, "error": err.Error()})
		return domain.BackendResponse{Text: msgLocationNotFound}
	}

	s.Logger.Debug("weather request", map[string]interface{}{"city": city, "lat": coords.Lat, "lon": coords.Lon})
	result, err := s.Weather.Forecast(ctx, coords)
	if err != nil {
		s.Logger.Error("weather request failed", err, map[string]interface{}{"city": city})
		return domain.BackendResponse{Text: msgWeatherError}
	}
	if !result.Succeeded() {
		s.Logger.Warn("weather request rejected", map[string]interface{}{"status": result.StatusCode})
		return domain.BackendResponse{Text: msgWeatherFailed}
	}
	if result.Forecast == nil {
		return domain.BackendResponse{Text: msgWeatherEmpty}
	}
	return domain.BackendResponse{Text: FormatForecast(city, *result.Forecast), Succeeded: true}
}

// QueryEncyclopedia answers with a page summary for the subject of text.
func (s *Service) QueryEncyclopedia(ctx context.Context, text string) domain.BackendResponse {
	term := EncyclopediaSearchTerm(text)
	if term == "" {
		return domain.BackendResponse{Text: msgSummaryNotFound}
	}

	s.Logger.Debug("encyclopedia request", map[string]interface{}{"term": term})
	result, err := s.Encyclopedia.Summary(ctx, term)
	if err != nil {
		s.Logger.Error("encyclopedia request failed", err, map[string]interface{}{"term": term})
		s.Registry.MarkError(domain.BackendEncyclopedia)
		return domain.BackendResponse{Text: msgSummaryError}
	}
	if !result.Succeeded() {
		s.Logger.Warn("encyclopedia request rejected", map[string]interface{}{"term": term, "status": result.StatusCode})
		s.Registry.MarkError(domain.BackendEncyclopedia)
		return domain.BackendResponse{Text: msgSummaryFailed}
	}
	if result.Summary == nil || strings.TrimSpace(result.Summary.Extract) == "" {
		return domain.BackendResponse{Text: msgSummaryNotFound}
	}
	return domain.BackendResponse{Text: FormatSummary(*result.Summary), Succeeded: true}
}

// QueryGenerativeChat asks the generative model, retrying with linear backoff.
func (s *Service) QueryGenerativeChat(ctx context.Context, text string) domain.BackendResponse {
	question := turkish.CleanMessage(text)
	if question == "" {
		return domain.BackendResponse{Text: msgEmptyMessage}
	}

	prompt := BuildPrompt(question, s.History.Recent(), domain.DefaultHistorySize)
	credential := s.Registry.Credential(domain.BackendGenerativeChat)
	if credential == "" {
		return domain.BackendResponse{Text: msgCredentialMissing}
	}
	if err := s.Generative.Initialize(credential); err != nil {
		s.Logger.Error("generative client init failed", err, nil)
		s.Registry.MarkError(domain.BackendGenerativeChat)
		return domain.BackendResponse{Text: msgUnexpected}
	}

	reply, err := s.generateWithRetry(ctx, prompt)
	if err != nil {
		s.Registry.MarkError(domain.BackendGenerativeChat)
		return domain.BackendResponse{Text: fmt.Sprintf(msgGenerativeFailed, failureReason(err))}
	}
	return domain.BackendResponse{Text: reply, Succeeded: true}
}

func (s *Service) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = domain.DefaultMaxAttempts
	}
	base := s.BackoffBase
	if base <= 0 {
		base = domain.DefaultBackoffBase
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		s.Logger.Debug("generative request", map[string]interface{}{
			"provider": s.Generative.Name(),
			"attempt":  attempt,
		})
		reply, err := s.Generative.GenerateContent(ctx, prompt)
		if err == nil && strings.TrimSpace(reply) == "" {
			err = errors.New(msgEmptyResponse)
		}
		if err == nil {
			return strings.TrimSpace(reply), nil
		}
		lastErr = err
		s.Logger.Warn("generative attempt failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
		if attempt < attempts {
			if sleepErr := s.Sleeper.Sleep(ctx, base*time.Duration(attempt)); sleepErr != nil {
				lastErr = sleepErr
				break
			}
		}
	}
	s.Logger.Error("generative attempts exhausted", lastErr, map[string]interface{}{"attempts": attempts})
	return "", fmt.Errorf("%w: %w", domain.ErrRetryExhausted, lastErr)
}

// coordinates resolves a city through the cache, then the geocoder.
// Failed lookups are not cached.
func (s *Service) coordinates(ctx context.Context, city string) (domain.Coordinates, error) {
	if s.Locations != nil {
		if coords, ok := s.Locations.Get(city); ok {
			s.Logger.Debug("geocode cache hit", map[string]interface{}{"city": city})
			return coords, nil
		}
	}

	country := s.Country
	if country == "" {
		country = domain.DefaultGeocodeCountry
	}
	places, err := s.Geocoder.Search(ctx, city+", "+country)
	if err != nil {
		return domain.Coordinates{}, err
	}
	if len(places) == 0 {
		return domain.Coordinates{}, domain.ErrLocationNotFound
	}

	coords := places[0].Coordinates
	if s.Locations != nil {
		if err := s.Locations.Set(city, coords); err != nil {
			s.Logger.Warn("geocode cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return coords, nil
}

func (s *Service) persist(ctx context.Context, msg domain.Message) {
	if s.Transcript == nil {
		return
	}
	if err := s.Transcript.Insert(ctx, msg); err != nil {
		s.Logger.Error("transcript insert failed", err, map[string]interface{}{"id": msg.ID})
	}
}

func (s *Service) classifier() *classify.Classifier {
	if s.Classifier == nil {
		return classify.New(nil, s.Logger)
	}
	return s.Classifier
}

// failureReason is the last underlying error's message, without the
// retry wrapper.
func failureReason(err error) string {
	var cause error = err
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 1 {
			cause = errs[len(errs)-1]
		}
	}
	if cause == nil || cause.Error() == "" {
		return msgUnknownError
	}
	return cause.Error()
}
