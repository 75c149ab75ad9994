package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHostedBase  = "https://api.openai.com/v1"
	defaultHostedModel = "gpt-4o-mini"
	defaultLocalModel  = "llama3.1:latest"

	// Prompts are clipped well under typical context windows so a document
	// at the editor cap still leaves headroom for the template.
	maxContentChars = 120_000
	maxExcerptChars = 8_000
)

const defaultHTTPTimeout = 3 * time.Minute

// ErrNotConfigured means no generation backend is available. The feature
// stays visible in the UI but must never issue a network call; the caller
// surfaces the condition once at startup.
var ErrNotConfigured = errors.New("llm: no generation credential or endpoint configured")

// Config describes how to build a generation client.
type Config struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

// Client turns the edited document and its highlighted excerpt into a
// drafted blog post. The response is unstructured markdown; failures are
// generic and never retried here.
type Client interface {
	GeneratePost(ctx context.Context, rawContent, excerpt string) (string, error)
	Name() string
}

// New builds a client from explicit configuration. A credential selects the
// hosted chat backend; a bare endpoint without a credential selects a local
// Ollama host. Neither yields ErrNotConfigured.
func New(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) != "" {
		base := strings.TrimRight(cfg.Endpoint, "/")
		if base == "" {
			base = defaultHostedBase
		}
		model := cfg.Model
		if model == "" {
			model = defaultHostedModel
		}
		return &hostedClient{
			apiKey: cfg.APIKey,
			model:  model,
			base:   base,
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	}
	if strings.TrimSpace(cfg.Endpoint) != "" {
		model := cfg.Model
		if model == "" {
			model = defaultLocalModel
		}
		return &ollamaClient{
			host:   strings.TrimRight(cfg.Endpoint, "/"),
			model:  model,
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	}
	return nil, ErrNotConfigured
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Generations routinely run past 60s; rely on the caller's context for
	// cancellation rather than a tight client timeout.
	return &http.Client{Timeout: defaultHTTPTimeout}
}
