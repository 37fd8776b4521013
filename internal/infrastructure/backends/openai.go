package backends

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1"
	defaultOpenAIModel    = "gpt-4o-mini"
)

// OpenAIChat talks to any OpenAI-compatible chat completions endpoint
// through the official SDK.
type OpenAIChat struct {
	baseURL    string
	model      string
	httpClient *http.Client

	mu     sync.RWMutex
	client *openai.Client
}

// NewOpenAIChat creates an uninitialized client; call Initialize with the key.
func NewOpenAIChat(settings domain.GenerativeSettings, httpClient *http.Client) *OpenAIChat {
	return &OpenAIChat{
		baseURL:    orDefault(settings.Endpoint, defaultOpenAIEndpoint),
		model:      orDefault(settings.Model, defaultOpenAIModel),
		httpClient: httpClient,
	}
}

func (o *OpenAIChat) Name() string {
	return domain.GenerativeProviderOpenAI
}

// Initialize builds the SDK client. SDK retries are disabled because the
// orchestrator owns the retry budget.
func (o *OpenAIChat) Initialize(credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.ErrCredentialMissing
	}
	opts := []option.RequestOption{
		option.WithBaseURL(o.baseURL),
		option.WithAPIKey(credential),
		option.WithMaxRetries(0),
	}
	if o.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(o.httpClient))
	}
	client := openai.NewClient(opts...)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.client = &client
	return nil
}

// GenerateContent sends prompt as one user message.
func (o *OpenAIChat) GenerateContent(ctx context.Context, prompt string) (string, error) {
	o.mu.RLock()
	client := o.client
	o.mu.RUnlock()
	if client == nil {
		return "", fmt.Errorf("OpenAI API error: %w", errNotInitialized)
	}

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})
	if err != nil {
		return "", &domain.BackendError{Backend: domain.BackendGenerativeChat, Err: fmt.Errorf("OpenAI API error: %w", err)}
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("OpenAI API error: Empty response received")
	}
	return completion.Choices[0].Message.Content, nil
}

var _ ports.GenerativeClient = (*OpenAIChat)(nil)
