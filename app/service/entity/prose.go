package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

var _ Extractor = Prose{}

// Prose runs the prose named entity recognizer in process.
type Prose struct{}

func (Prose) Extract(_ context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose.NewDocument: %w", err)
	}

	ents := doc.Entities()
	result := make([]Entity, 0, len(ents))
	for _, ent := range ents {
		result = append(result, Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}

	return result, nil
}
