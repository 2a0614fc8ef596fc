package ollama

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"politix/app/client/zeroshot"
	"politix/app/config"
	"politix/app/service/intent"

	"github.com/philippgille/chromem-go"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Classifier ranks intent labels with a local Ollama chat model.
type Classifier struct {
	llm     llms.Model
	timeout time.Duration
}

func NewClassifier(cfg config.ModelConfig, timeout time.Duration) (*Classifier, error) {
	llm, err := ollama.New(
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithFormat("json"),
		ollama.WithHTTPClient(&http.Client{
			Timeout: timeout,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama.New: %w", err)
	}

	llm.CallbacksHandler = LogCallbackHandler{}

	return newClassifier(llm, timeout), nil
}

func newClassifier(llm llms.Model, timeout time.Duration) *Classifier {
	return &Classifier{
		llm:     llm,
		timeout: timeout,
	}
}

func (c *Classifier) Rank(ctx context.Context, text string, candidates []string) ([]intent.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(
		ctx,
		c.llm,
		zeroshot.BuildPrompt(text, candidates),
		llms.WithTemperature(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate completion: %w", err)
	}

	return zeroshot.ParseResponse(completion)
}

// Embedder wraps the chromem Ollama embedding function. Ollama has no batch endpoint here, so
// batches are embedded one text at a time.
type Embedder struct {
	embed   chromem.EmbeddingFunc
	timeout time.Duration
}

func NewEmbedder(cfg config.ModelConfig, timeout time.Duration) *Embedder {
	return newEmbedder(chromem.NewEmbeddingFuncOllama(cfg.Model, cfg.BaseURL), timeout)
}

func newEmbedder(embed chromem.EmbeddingFunc, timeout time.Duration) *Embedder {
	return &Embedder{
		embed:   embed,
		timeout: timeout,
	}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vector, err := e.embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}

	return vector, nil
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		vectors[i] = vector
	}

	return vectors, nil
}

// HealthCheck embeds a probe text to make sure the model is pulled and the server answers.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.Embed(ctx, "ping"); err != nil {
		return err
	}

	return nil
}
