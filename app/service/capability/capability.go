package capability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"politix/app/client/mcp"
	"politix/app/client/ollama"
	"politix/app/client/openai"
	"politix/app/config"
	"politix/app/service/entity"
	"politix/app/service/intent"
	"politix/app/service/metrics"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const (
	NameClassifier = "classifier"
	NameEmbedder   = "embedder"
	NameExtractor  = "extractor"
)

var ErrUnavailable = errors.New("capability unavailable")

// Embedder turns texts into vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Availability struct {
	Classifier bool
	Embedder   bool
	Extractor  bool
}

var _ do.Shutdownable = (*Set)(nil)

// Set holds the model backed capabilities resolved once at startup. Unavailable ones are
// replaced by their fallback: substring intent matching, no retrieval and no entities.
type Set struct {
	Classifier intent.Classifier
	Embedder   Embedder
	Extractor  entity.Extractor
	Available  Availability

	mu      sync.Mutex
	closers []func() error
}

func New(di *do.Injector) (*Set, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)
	metricsSvc := do.MustInvoke[*metrics.Service](di)

	set := Resolve(ctx, cfg, metricsSvc)
	if err := ctx.Err(); err != nil {
		_ = set.Shutdown()
		return nil, err
	}

	return set, nil
}

// Resolve probes every configured backend concurrently. A backend that fails its probe is
// logged and left unavailable.
func Resolve(ctx context.Context, cfg *config.Config, metricsSvc *metrics.Service) *Set {
	set := &Set{
		Classifier: intent.Substring{},
		Embedder:   unavailableEmbedder{},
		Extractor:  entity.Unavailable{},
	}

	var g errgroup.Group

	g.Go(func() error {
		model, err := set.resolveClassifier(ctx, cfg.Classifier)
		if err != nil {
			slog.Warn("Zero-shot classifier unavailable, using substring match",
				"provider", cfg.Classifier.Provider,
				"error", err)
			return nil
		}
		if model != nil {
			set.Classifier = intent.NewZeroShot(&instrumentedModel{model: model, metrics: metricsSvc}, cfg.Classifier.MinScore)
			set.Available.Classifier = true
		}
		return nil
	})

	g.Go(func() error {
		embedder, err := set.resolveEmbedder(ctx, cfg.Embedding)
		if err != nil {
			slog.Warn("Embedding model unavailable, Q&A retrieval disabled",
				"provider", cfg.Embedding.Provider,
				"error", err)
			return nil
		}
		if embedder != nil {
			set.Embedder = &instrumentedEmbedder{embedder: embedder, metrics: metricsSvc}
			set.Available.Embedder = true
		}
		return nil
	})

	g.Go(func() error {
		extractor, err := set.resolveExtractor(ctx, cfg.Entities)
		if err != nil {
			slog.Warn("Entity extractor unavailable",
				"provider", cfg.Entities.Provider,
				"error", err)
			return nil
		}
		if extractor != nil {
			set.Extractor = &instrumentedExtractor{extractor: extractor, metrics: metricsSvc}
			set.Available.Extractor = true
		}
		return nil
	})

	_ = g.Wait()

	metricsSvc.SetCapability(NameClassifier, set.Available.Classifier)
	metricsSvc.SetCapability(NameEmbedder, set.Available.Embedder)
	metricsSvc.SetCapability(NameExtractor, set.Available.Extractor)

	slog.Info("Capabilities resolved",
		"classifier", set.Available.Classifier,
		"embedder", set.Available.Embedder,
		"extractor", set.Available.Extractor)

	return set
}

func (s *Set) resolveClassifier(ctx context.Context, cfg config.Classifier) (intent.ZeroShotModel, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client := openai.NewClient(cfg.Model, cfg.Timeout)
		if err := client.HealthCheck(ctx); err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOllama:
		client, err := ollama.NewClassifier(cfg.Model, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		if _, err = client.Rank(ctx, "hello", []string{intent.Greeting.String()}); err != nil {
			return nil, fmt.Errorf("probe: %w", err)
		}
		return client, nil
	default:
		return nil, nil
	}
}

func (s *Set) resolveEmbedder(ctx context.Context, cfg config.Embedding) (Embedder, error) {
	var embedder interface {
		Embedder
		healthChecker
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		embedder = openai.NewClient(cfg.Model, cfg.Timeout)
	case config.ProviderOllama:
		embedder = ollama.NewEmbedder(cfg.Model, cfg.Timeout)
	default:
		return nil, nil
	}

	if err := embedder.HealthCheck(ctx); err != nil {
		return nil, err
	}

	return embedder, nil
}

func (s *Set) resolveExtractor(ctx context.Context, cfg config.Entities) (entity.Extractor, error) {
	switch cfg.Provider {
	case config.ProviderProse:
		return entity.Prose{}, nil
	case config.ProviderMCP:
		client, err := mcp.NewClient(ctx, cfg.MCP, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		s.addCloser(client.Close)
		return entity.NewTool(client, cfg.MCP.Tool), nil
	default:
		return nil, nil
	}
}

func (s *Set) addCloser(closer func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closers = append(s.closers, closer)
}

func (s *Set) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil

	return errors.Join(errs...)
}

type unavailableEmbedder struct{}

func (unavailableEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrUnavailable
}

func (unavailableEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, ErrUnavailable
}
