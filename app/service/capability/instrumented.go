package capability

import (
	"context"
	"time"

	"politix/app/service/entity"
	"politix/app/service/intent"
	"politix/app/service/metrics"
)

type instrumentedModel struct {
	model   intent.ZeroShotModel
	metrics *metrics.Service
}

func (m *instrumentedModel) Rank(ctx context.Context, text string, candidates []string) ([]intent.Prediction, error) {
	start := time.Now()
	predictions, err := m.model.Rank(ctx, text, candidates)
	m.metrics.ObserveModelCall(NameClassifier, start, err)

	return predictions, err
}

type instrumentedEmbedder struct {
	embedder Embedder
	metrics  *metrics.Service
}

func (e *instrumentedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vector, err := e.embedder.Embed(ctx, text)
	e.metrics.ObserveModelCall(NameEmbedder, start, err)

	return vector, err
}

func (e *instrumentedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	e.metrics.ObserveModelCall(NameEmbedder, start, err)

	return vectors, err
}

type instrumentedExtractor struct {
	extractor entity.Extractor
	metrics   *metrics.Service
}

func (e *instrumentedExtractor) Extract(ctx context.Context, text string) ([]entity.Entity, error) {
	start := time.Now()
	entities, err := e.extractor.Extract(ctx, text)
	e.metrics.ObserveModelCall(NameExtractor, start, err)

	return entities, err
}
