package qa

import (
	"fmt"

	"politix/app/util/resource"

	_ "embed"

	"github.com/go-playground/validator/v10"
)

//go:embed qa_dataset.json
var embeddedDataset []byte

const schema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["question", "answer"],
		"properties": {
			"question": {"type": "string"},
			"answer": {"type": "string"}
		}
	}
}`

type Entry struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// LoadDataset reads the Q&A pairs from path, or the embedded dataset when path is empty.
func LoadDataset(path string) ([]Entry, error) {
	var entries []Entry
	if err := resource.Load("qa dataset", path, embeddedDataset, schema, &entries); err != nil {
		return nil, err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			source := path
			if source == "" {
				source = "<embedded>"
			}

			return nil, &resource.LoadError{
				Resource: "qa dataset",
				Path:     source,
				Err:      fmt.Errorf("entry %d: %w", i, err),
			}
		}
	}

	return entries, nil
}
