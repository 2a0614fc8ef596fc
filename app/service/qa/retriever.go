package qa

import (
	"context"
	"errors"
	"log/slog"

	"politix/app/config"
	"politix/app/service/capability"

	"github.com/samber/do"
)

// Retriever answers a text with the stored answer of the most similar question.
type Retriever struct {
	embedder  Embedder
	index     *Index
	threshold float64
}

func New(di *do.Injector) (*Retriever, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)
	caps := do.MustInvoke[*capability.Set](di)

	if !caps.Available.Embedder {
		slog.Info("Q&A retrieval disabled, no embedding model")
		return NewRetriever(nil, nil, cfg.Embedding.Threshold), nil
	}

	entries, err := LoadDataset(cfg.Resources.QA)
	if err != nil {
		return nil, err
	}

	index, err := BuildIndex(ctx, entries, caps.Embedder)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}

		slog.Warn("Q&A retrieval disabled, failed to build index", "error", err)
		return NewRetriever(nil, nil, cfg.Embedding.Threshold), nil
	}

	slog.Info("Q&A index built", "entries", index.Len())

	return NewRetriever(caps.Embedder, index, cfg.Embedding.Threshold), nil
}

func NewRetriever(embedder Embedder, index *Index, threshold float64) *Retriever {
	return &Retriever{
		embedder:  embedder,
		index:     index,
		threshold: threshold,
	}
}

func (r *Retriever) Enabled() bool {
	return r.embedder != nil && r.index.Len() > 0
}

// Retrieve returns the best answer when its question scores strictly above the threshold.
func (r *Retriever) Retrieve(ctx context.Context, text string) (string, bool) {
	if !r.Enabled() {
		return "", false
	}

	query, err := r.embedder.Embed(ctx, text)
	if err != nil {
		slog.Warn("Failed to embed user input, skipping Q&A", "error", err)
		return "", false
	}

	idx, score := r.index.Best(query)
	if idx < 0 || score <= r.threshold {
		slog.Debug("No Q&A match", "best_score", score)
		return "", false
	}

	entry := r.index.Entry(idx)
	slog.Debug("Q&A match", "question", entry.Question, "score", score)

	return entry.Answer, true
}
