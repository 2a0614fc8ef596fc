// Package zeroshot holds the prompt and answer format shared by the LLM-backed zero-shot
// classifiers.
package zeroshot

import (
	"encoding/json"
	"fmt"
	"strings"

	"politix/app/service/intent"

	_ "embed"
)

//go:embed prompt_template.txt
var promptTemplate string

type response struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func BuildPrompt(text string, candidates []string) string {
	replacer := strings.NewReplacer(
		"{labels}", strings.Join(candidates, ", "),
		"{text}", text,
	)

	return replacer.Replace(promptTemplate)
}

// ParseResponse decodes a model answer, tolerating markdown code fences around the JSON.
func ParseResponse(raw string) ([]intent.Prediction, error) {
	result := strings.TrimSpace(raw)
	result = strings.Trim(result, "`")
	result = strings.TrimSpace(result)
	result = strings.TrimPrefix(result, "json")
	result = strings.TrimSpace(result)

	var resp response
	if err := json.Unmarshal([]byte(result), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(resp.Labels) != len(resp.Scores) {
		return nil, fmt.Errorf("got %d labels and %d scores", len(resp.Labels), len(resp.Scores))
	}

	predictions := make([]intent.Prediction, 0, len(resp.Labels))
	for i, label := range resp.Labels {
		predictions = append(predictions, intent.Prediction{
			Label: strings.TrimSpace(label),
			Score: resp.Scores[i],
		})
	}

	return predictions, nil
}
