package qa

import (
	"context"
	"fmt"
	"math"

	"github.com/elliotchance/pie/v2"
)

// Embedder turns text into fixed-length vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Index keeps every entry next to the embedding of its question. Entries and vectors share
// positions and are never reordered.
type Index struct {
	entries []Entry
	vectors [][]float32
}

// BuildIndex embeds every question in dataset order.
func BuildIndex(ctx context.Context, entries []Entry, embedder Embedder) (*Index, error) {
	if len(entries) == 0 {
		return &Index{}, nil
	}

	questions := pie.Map(entries, func(e Entry) string {
		return e.Question
	})

	vectors, err := embedder.EmbedBatch(ctx, questions)
	if err != nil {
		return nil, fmt.Errorf("embed questions: %w", err)
	}

	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d questions", len(vectors), len(entries))
	}

	return &Index{
		entries: entries,
		vectors: vectors,
	}, nil
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}

	return len(i.entries)
}

// Best returns the position and score of the most similar question. Ties keep the earliest
// entry.
func (i *Index) Best(query []float32) (int, float64) {
	bestIdx := -1
	bestScore := math.Inf(-1)

	for idx, vector := range i.vectors {
		score := cosineSimilarity(query, vector)
		if score > bestScore {
			bestIdx = idx
			bestScore = score
		}
	}

	return bestIdx, bestScore
}

func (i *Index) Entry(idx int) Entry {
	return i.entries[idx]
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
