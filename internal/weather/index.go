package weather

import (
	"errors"
	"fmt"
	"math"
)

// similarityIndex is a throwaway brute-force cosine index over a handful of documents.
// It is built for a single question and discarded.
type similarityIndex struct {
	docs    []Document
	vectors [][]float32
}

func newSimilarityIndex(docs []Document, vectors [][]float32) (*similarityIndex, error) {
	if len(docs) != len(vectors) {
		return nil, errors.New("documents and vectors length mismatch")
	}
	for i, v := range vectors {
		if len(v) == 0 || len(v) != len(vectors[0]) {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), len(vectors[0]))
		}
	}
	return &similarityIndex{docs: docs, vectors: vectors}, nil
}

// nearest returns the most similar document. On equal scores the earlier document wins.
func (ix *similarityIndex) nearest(query []float32) (Document, float64, error) {
	if len(ix.docs) == 0 {
		return Document{}, 0, ErrNoRecords
	}
	if len(query) != len(ix.vectors[0]) {
		return Document{}, 0, fmt.Errorf("query has dimension %d, expected %d", len(query), len(ix.vectors[0]))
	}
	best := 0
	bestScore := math.Inf(-1)
	for i, v := range ix.vectors {
		score := cosine(v, query)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return ix.docs[best], bestScore, nil
}

// cosine expects vectors of equal dimension.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
