package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-assistant/internal/weather"
)

// OllamaConfig configures the Ollama-backed completer and embedder.
type OllamaConfig struct {
	Host        string
	ChatModel   string
	EmbedModel  string
	Temperature float64
}

// OllamaClient implements weather.Completer and weather.Embedder against an Ollama server.
type OllamaClient struct {
	client      *api.Client
	chatModel   string
	embedModel  string
	temperature float64

	chatCircuit  *gobreaker.CircuitBreaker
	embedCircuit *gobreaker.CircuitBreaker
}

var (
	_ weather.Completer = (*OllamaClient)(nil)
	_ weather.Embedder  = (*OllamaClient)(nil)
)

// NewOllamaClient creates a client for the Ollama server at cfg.Host.
func NewOllamaClient(httpClient *http.Client, cfg OllamaConfig) (*OllamaClient, error) {
	host := cfg.Host
	if host == "" {
		host = "http://localhost:11434"
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "llama3.2"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "nomic-embed-text"
	}

	return &OllamaClient{
		client:       api.NewClient(base, httpClient),
		chatModel:    cfg.ChatModel,
		embedModel:   cfg.EmbedModel,
		temperature:  cfg.Temperature,
		chatCircuit:  newCircuitBreaker("ollama-chat"),
		embedCircuit: newCircuitBreaker("ollama-embed"),
	}, nil
}

// Complete sends messages to the chat endpoint. A non-nil schema is passed as the
// structured output format and the reply is normalised to strict JSON.
func (c *OllamaClient) Complete(ctx context.Context, messages []weather.Message, schema *weather.Schema) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    c.chatModel,
		Messages: make([]api.Message, 0, len(messages)),
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": c.temperature,
		},
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, api.Message{Role: string(m.Role), Content: m.Content})
	}
	if schema != nil {
		format, err := json.Marshal(schema.JSONSchema())
		if err != nil {
			return "", fmt.Errorf("failed to marshal schema %s: %w", schema.Name, err)
		}
		req.Format = format
	}

	content, err := execute(c.chatCircuit, func() (string, error) {
		var out strings.Builder
		err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
			out.WriteString(resp.Message.Content)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("ollama chat failed: %w", err)
		}
		return out.String(), nil
	})
	if err != nil {
		return "", err
	}

	if schema == nil {
		return content, nil
	}
	return normalizeJSON(content)
}

// Embed returns one embedding per text using the embed endpoint.
func (c *OllamaClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return execute(c.embedCircuit, func() ([][]float32, error) {
		resp, err := c.client.Embed(ctx, &api.EmbedRequest{
			Model: c.embedModel,
			Input: texts,
		})
		if err != nil {
			return nil, fmt.Errorf("ollama embed failed: %w", err)
		}
		if len(resp.Embeddings) != len(texts) {
			return nil, fmt.Errorf("ollama embed returned %d vectors for %d inputs", len(resp.Embeddings), len(texts))
		}
		return resp.Embeddings, nil
	})
}
