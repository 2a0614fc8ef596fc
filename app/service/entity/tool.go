package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ToolCaller invokes a named tool and returns its text output.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

var _ Extractor = (*Tool)(nil)

// Tool delegates extraction to an external tool that answers with a JSON array of
// {"text", "label"} objects.
type Tool struct {
	caller ToolCaller
	name   string
}

func NewTool(caller ToolCaller, name string) *Tool {
	return &Tool{
		caller: caller,
		name:   name,
	}
}

func (t *Tool) Extract(ctx context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	output, err := t.caller.CallTool(ctx, t.name, map[string]any{
		"text": text,
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", t.name, err)
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}

	var result []Entity
	if err = json.Unmarshal([]byte(output), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s output: %w", t.name, err)
	}

	return result, nil
}
