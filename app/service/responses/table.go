package responses

import (
	"fmt"
	"log/slog"

	"politix/app/config"
	"politix/app/service/intent"
	"politix/app/util/resource"

	_ "embed"

	"github.com/samber/do"
)

const DefaultKey = "default"

//go:embed responses.json
var embeddedResponses []byte

const schema = `{
	"type": "object",
	"required": ["default", "farewell"],
	"additionalProperties": {
		"type": "array",
		"minItems": 1,
		"items": {"type": "string"}
	}
}`

// Table maps an intent label, or DefaultKey, to its candidate replies.
type Table struct {
	replies map[string][]string
}

func New(di *do.Injector) (*Table, error) {
	cfg := do.MustInvoke[*config.Config](di)

	table, err := Load(cfg.Resources.Responses)
	if err != nil {
		return nil, err
	}

	for _, label := range intent.Labels {
		if !table.Has(string(label)) {
			slog.Warn("No responses for intent, default replies will be used", "intent", label)
		}
	}

	return table, nil
}

// Load reads the table from path, or the embedded table when path is empty.
func Load(path string) (*Table, error) {
	var replies map[string][]string
	if err := resource.Load("responses", path, embeddedResponses, schema, &replies); err != nil {
		return nil, err
	}

	return NewTable(replies), nil
}

func NewTable(replies map[string][]string) *Table {
	return &Table{replies: replies}
}

func (t *Table) Replies(key string) ([]string, bool) {
	replies, ok := t.replies[key]
	if !ok || len(replies) == 0 {
		return nil, false
	}

	return replies, true
}

func (t *Table) Has(key string) bool {
	_, ok := t.Replies(key)
	return ok
}

// Pick returns a random reply for key, falling back to the default replies.
func (t *Table) Pick(picker *Picker, key string) (string, error) {
	if replies, ok := t.Replies(key); ok {
		return picker.Pick(replies), nil
	}

	if replies, ok := t.Replies(DefaultKey); ok {
		return picker.Pick(replies), nil
	}

	return "", fmt.Errorf("no replies for %q and no default replies", key)
}
