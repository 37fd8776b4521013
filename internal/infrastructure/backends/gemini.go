package backends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

var errNotInitialized = errors.New("model not initialized")

const geminiKeyHeader = "x-goog-api-key"

// Gemini calls the Generative Language REST API.
type Gemini struct {
	endpoint string
	model    string
	client   *http.Client

	mu     sync.RWMutex
	apiKey string
}

// NewGemini creates an uninitialized client; call Initialize with the key.
func NewGemini(settings domain.GenerativeSettings, client *http.Client) *Gemini {
	return &Gemini{
		endpoint: strings.TrimRight(orDefault(settings.Endpoint, domain.DefaultGeminiEndpoint), "/"),
		model:    orDefault(settings.Model, domain.DefaultGeminiModel),
		client:   client,
	}
}

func (g *Gemini) Name() string {
	return domain.GenerativeProviderGemini
}

// Initialize stores the API key used by later calls.
func (g *Gemini) Initialize(credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.ErrCredentialMissing
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.apiKey = credential
	return nil
}

// GenerateContent sends prompt as a single user turn and joins the text parts
// of the first candidate.
func (g *Gemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	g.mu.RLock()
	key := g.apiKey
	g.mu.RUnlock()
	if key == "" {
		return "", fmt.Errorf("Gemini API error: %w", errNotInitialized)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": prompt}},
			},
		},
	})
	if err != nil {
		return "", err
	}

	// The key travels in a header so transport errors, which quote the URL, never carry it.
	target := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, url.PathEscape(g.model))
	resp, err := do(ctx, g.client, http.MethodPost, target, payload, map[string]string{geminiKeyHeader: key})
	if err != nil {
		return "", &domain.BackendError{Backend: domain.BackendGenerativeChat, Err: fmt.Errorf("Gemini API error: %w", err)}
	}
	if !resp.ok() {
		msg := gjson.GetBytes(resp.body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.status)
		}
		return "", &domain.BackendError{
			Backend:    domain.BackendGenerativeChat,
			StatusCode: resp.status,
			Err:        fmt.Errorf("Gemini API error: %s", msg),
		}
	}

	var parts []string
	gjson.GetBytes(resp.body, "candidates.0.content.parts.#.text").ForEach(func(_, value gjson.Result) bool {
		parts = append(parts, value.String())
		return true
	})
	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", errors.New("Gemini API error: Empty response received")
	}
	return text, nil
}

var _ ports.GenerativeClient = (*Gemini)(nil)
