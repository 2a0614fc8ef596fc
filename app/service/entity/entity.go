package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/elliotchance/pie/v2"
)

// Entity is a span of the input recognised as a named thing. Label comes from the model.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type Extractor interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
}

var _ Extractor = Unavailable{}

// Unavailable never finds anything.
type Unavailable struct{}

func (Unavailable) Extract(context.Context, string) ([]Entity, error) {
	return nil, nil
}

// FormatMentions renders entities as `"Obama" (PERSON), "Paris" (GPE)`.
func FormatMentions(entities []Entity) string {
	return strings.Join(pie.Map(entities, func(e Entity) string {
		return fmt.Sprintf("%q (%s)", e.Text, e.Label)
	}), ", ")
}
