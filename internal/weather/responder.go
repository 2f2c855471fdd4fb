package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Responder answers free-text questions using the single most relevant record as context.
type Responder struct {
	store     Store
	completer Completer
	embedder  Embedder
}

// NewResponder creates a new Responder.
func NewResponder(store Store, completer Completer, embedder Embedder) *Responder {
	return &Responder{
		store:     store,
		completer: completer,
		embedder:  embedder,
	}
}

// Answer retrieves the record closest to question and asks the completer to phrase
// an answer from it. It never writes to the store.
func (r *Responder) Answer(ctx context.Context, question string) (Answer, error) {
	records, err := r.store.GetAll(ctx)
	if err != nil {
		return Answer{}, fmt.Errorf("load weather records: %w", err)
	}
	if len(records) == 0 {
		return Answer{}, ErrNoRecords
	}

	docs := make([]Document, 0, len(records))
	texts := make([]string, 0, len(records)+1)
	for _, rec := range records {
		sentence := RenderRecord(rec)
		docs = append(docs, Document{PageContent: sentence, Metadata: rec.City})
		texts = append(texts, sentence)
	}
	texts = append(texts, question)

	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return Answer{}, &ProviderError{Op: "embed documents", Err: err}
	}
	if len(vectors) != len(texts) {
		return Answer{}, &ProviderError{
			Op:  "embed documents",
			Err: fmt.Errorf("expected %d vectors, got %d", len(texts), len(vectors)),
		}
	}

	index, err := newSimilarityIndex(docs, vectors[:len(docs)])
	if err != nil {
		return Answer{}, &ProviderError{Op: "embed documents", Err: err}
	}
	best, score, err := index.nearest(vectors[len(docs)])
	if err != nil {
		return Answer{}, &ProviderError{Op: "embed question", Err: err}
	}
	log.Printf("DEBUG: question matched %s (score %.4f)", best.Metadata, score)

	text, err := r.completer.Complete(ctx, answerMessages(best.PageContent, question), nil)
	if err != nil {
		return Answer{}, &ProviderError{Op: "generate answer", Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{}, &ProviderError{Op: "generate answer", Err: errors.New("empty completion")}
	}

	return Answer{
		Input:   question,
		Context: []Document{best},
		Answer:  text,
	}, nil
}
