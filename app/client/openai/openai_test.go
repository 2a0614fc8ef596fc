package openai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"politix/app/config"
	"politix/app/service/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.ModelConfig{
		BaseURL: server.URL + "/v1",
		Token:   "test-token",
		Model:   "test-model",
	}, 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestRank(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		writeJSON(t, w, map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": `{"labels": ["farewell", "greeting"], "scores": [0.8, 0.2]}`,
				},
				"finish_reason": "stop",
			}},
		})
	})

	got, err := client.Rank(t.Context(), "bye", []string{"greeting", "farewell"})
	require.NoError(t, err)
	assert.Equal(t, []intent.Prediction{
		{Label: "farewell", Score: 0.8},
		{Label: "greeting", Score: 0.2},
	}, got)
}

func TestRank_NoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"id": "chatcmpl-1", "choices": []any{}})
	})

	_, err := client.Rank(t.Context(), "bye", []string{"farewell"})
	require.Error(t, err)
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)

		writeJSON(t, w, map[string]any{
			"object": "list",
			"model":  "test-model",
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float32{0, 1}},
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0}},
			},
		})
	})

	got, err := client.EmbedBatch(t.Context(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, got)
}

func TestEmbed_CountMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"object": "list", "data": []any{}})
	})

	_, err := client.Embed(t.Context(), "text")
	require.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		writeJSON(t, w, map[string]any{"object": "list", "data": []any{}})
	})

	require.NoError(t, client.HealthCheck(t.Context()))
}

func TestHealthCheck_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	require.Error(t, client.HealthCheck(t.Context()))
}
