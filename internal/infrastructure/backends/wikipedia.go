package backends

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Wikipedia fetches page summaries from the REST v1 API.
type Wikipedia struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewWikipedia creates a summary client.
func NewWikipedia(settings domain.EncyclopediaSettings, userAgent string, client *http.Client) *Wikipedia {
	return &Wikipedia{
		endpoint:  strings.TrimRight(orDefault(settings.Endpoint, domain.DefaultEncyclopediaEndpoint), "/"),
		userAgent: orDefault(userAgent, domain.DefaultUserAgent),
		client:    client,
	}
}

// Summary looks up title, following redirects.
func (w *Wikipedia) Summary(ctx context.Context, title string) (domain.SummaryResult, error) {
	target := w.endpoint + "/" + url.PathEscape(title) + "?redirect=true"
	resp, err := do(ctx, w.client, http.MethodGet, target, nil, map[string]string{
		"User-Agent": w.userAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return domain.SummaryResult{}, &domain.BackendError{Backend: domain.BackendEncyclopedia, Err: err}
	}
	result := domain.SummaryResult{StatusCode: resp.status}
	if !resp.ok() {
		return result, nil
	}
	if !gjson.ValidBytes(resp.body) {
		return result, &domain.BackendError{Backend: domain.BackendEncyclopedia, StatusCode: resp.status, Err: errors.New("invalid JSON body")}
	}
	fields := gjson.GetManyBytes(resp.body, "title", "extract", "description")
	result.Summary = &domain.Summary{
		Title:       fields[0].String(),
		Extract:     fields[1].String(),
		Description: fields[2].String(),
	}
	return result, nil
}

var _ ports.EncyclopediaClient = (*Wikipedia)(nil)
