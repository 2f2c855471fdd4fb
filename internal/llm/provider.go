package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/i474232898/weather-assistant/internal/weather"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Client is a provider that can both complete and embed.
type Client interface {
	weather.Completer
	weather.Embedder
}

// Options selects and configures the LLM provider.
type Options struct {
	Provider   string
	HTTPClient *http.Client
	Ollama     OllamaConfig
	Gemini     GeminiConfig
}

// New builds the configured provider client.
func New(ctx context.Context, opts Options) (Client, error) {
	switch opts.Provider {
	case ProviderOllama, "":
		httpClient := opts.HTTPClient
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		return NewOllamaClient(httpClient, opts.Ollama)
	case ProviderGemini:
		cfg := opts.Gemini
		if cfg.HTTPClient == nil {
			cfg.HTTPClient = opts.HTTPClient
		}
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
