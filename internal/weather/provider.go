package weather

import (
	"context"
)

// Completer abstracts a chat-completion provider (e.g. Ollama, Gemini).
// With a nil schema it returns free text; otherwise it returns a JSON document
// the provider was asked to shape after schema. One round trip per call.
type Completer interface {
	Complete(ctx context.Context, messages []Message, schema *Schema) (string, error)
}

// Embedder maps texts into a shared vector space, one vector per input text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is the contract the document store adapters (memory, postgres) must satisfy.
// Records are keyed by city name.
type Store interface {
	// GetAll returns every record ordered by city.
	GetAll(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, city string) (Record, error)
	// Merge writes the present fields of update, creating the record if needed.
	Merge(ctx context.Context, city string, update Update) error
	// Delete removes a record; deleting an absent city is not an error.
	Delete(ctx context.Context, city string) error
	Clear(ctx context.Context) error
}
