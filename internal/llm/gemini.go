package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/i474232898/weather-assistant/internal/weather"
)

// GeminiConfig configures the Gemini-backed completer and embedder.
type GeminiConfig struct {
	APIKey      string
	Model       string // e.g. "gemini-2.0-flash"
	EmbedModel  string
	Temperature float64

	// HTTPClient carries the provider timeout; nil uses the SDK default.
	HTTPClient *http.Client
}

// GeminiClient implements weather.Completer and weather.Embedder using the GenAI SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	embedModel  string
	temperature float32

	chatCircuit  *gobreaker.CircuitBreaker
	embedCircuit *gobreaker.CircuitBreaker
}

var (
	_ weather.Completer = (*GeminiClient)(nil)
	_ weather.Embedder  = (*GeminiClient)(nil)
)

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, geminiClientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client:       client,
		model:        cfg.Model,
		embedModel:   cfg.EmbedModel,
		temperature:  float32(cfg.Temperature),
		chatCircuit:  newCircuitBreaker("gemini-chat"),
		embedCircuit: newCircuitBreaker("gemini-embed"),
	}, nil
}

func geminiClientConfig(cfg GeminiConfig) *genai.ClientConfig {
	return &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
}

// Complete sends messages to generateContent. System messages become the system
// instruction; a non-nil schema switches the response to JSON mode.
func (c *GeminiClient) Complete(ctx context.Context, messages []weather.Message, schema *weather.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}

	var system, user []string
	for _, m := range messages {
		if m.Role == weather.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		user = append(user, m.Content)
	}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}
	// generateContent needs at least one user turn.
	if len(user) == 0 {
		user = system
		config.SystemInstruction = nil
	}

	if schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenaiSchema(schema)
	}

	text, err := execute(c.chatCircuit, func() (string, error) {
		result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(strings.Join(user, "\n\n")), config)
		if err != nil {
			return "", fmt.Errorf("gemini generation failed: %w", err)
		}
		return result.Text(), nil
	})
	if err != nil {
		return "", err
	}

	if schema == nil {
		return text, nil
	}
	return normalizeJSON(text)
}

// Embed returns one embedding per text using embedContent.
func (c *GeminiClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	return execute(c.embedCircuit, func() ([][]float32, error) {
		resp, err := c.client.Models.EmbedContent(ctx, c.embedModel, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("gemini embed failed: %w", err)
		}
		if len(resp.Embeddings) != len(texts) {
			return nil, fmt.Errorf("gemini embed returned %d vectors for %d inputs", len(resp.Embeddings), len(texts))
		}
		vectors := make([][]float32, len(resp.Embeddings))
		for i, e := range resp.Embeddings {
			vectors[i] = e.Values
		}
		return vectors, nil
	})
}

func toGenaiSchema(s *weather.Schema) *genai.Schema {
	out := &genai.Schema{
		Title:      s.Name,
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Properties)),
	}
	for _, p := range s.Properties {
		out.Properties[p.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: p.Description,
			Enum:        p.Enum,
		}
		out.PropertyOrdering = append(out.PropertyOrdering, p.Name)
		if p.Required {
			out.Required = append(out.Required, p.Name)
		}
	}
	return out
}
