package intent

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/elliotchance/pie/v2"
)

// Classifier assigns at most one label from labels to a text.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []Label) (Label, bool)
}

// Prediction is one ranked candidate returned by a zero-shot model.
type Prediction struct {
	Label string
	Score float64
}

// ZeroShotModel scores every candidate label for a text.
type ZeroShotModel interface {
	Rank(ctx context.Context, text string, candidates []string) ([]Prediction, error)
}

var _ Classifier = Substring{}

// Substring returns the first label, in the given order, that occurs in the lower-cased text.
type Substring struct{}

func (Substring) Classify(_ context.Context, text string, labels []Label) (Label, bool) {
	lower := strings.ToLower(text)

	idx := pie.FindFirstUsing(labels, func(label Label) bool {
		return strings.Contains(lower, string(label))
	})
	if idx < 0 {
		return "", false
	}

	return labels[idx], true
}

var _ Classifier = (*ZeroShot)(nil)

// ZeroShot accepts the model's top label when its score is above minScore. A failed model call
// falls back to substring matching for that text.
type ZeroShot struct {
	model    ZeroShotModel
	minScore float64
	fallback Classifier
}

func NewZeroShot(model ZeroShotModel, minScore float64) *ZeroShot {
	return &ZeroShot{
		model:    model,
		minScore: minScore,
		fallback: Substring{},
	}
}

func (z *ZeroShot) Classify(ctx context.Context, text string, labels []Label) (Label, bool) {
	candidates := pie.Map(labels, Label.String)

	predictions, err := z.model.Rank(ctx, text, candidates)
	if err != nil {
		slog.Warn("Zero-shot classification failed, using substring match", "error", err)
		return z.fallback.Classify(ctx, text, labels)
	}

	if len(predictions) == 0 {
		return "", false
	}

	ranked := slices.Clone(predictions)
	slices.SortStableFunc(ranked, func(a, b Prediction) int {
		return cmp.Compare(b.Score, a.Score)
	})

	top := ranked[0]
	if top.Score <= z.minScore {
		slog.Debug("Zero-shot score below threshold", "label", top.Label, "score", top.Score)
		return "", false
	}

	if !slices.Contains(labels, Label(top.Label)) {
		slog.Warn("Zero-shot model returned unknown label", "label", top.Label)
		return "", false
	}

	return Label(top.Label), true
}
