package responses

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"politix/app/service/intent"
	"politix/app/util/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedTableCoversEveryIntent(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)

	for _, label := range intent.Labels {
		replies, ok := table.Replies(string(label))
		assert.True(t, ok, "no replies for %s", label)
		assert.NotEmpty(t, replies, "empty replies for %s", label)
	}

	assert.True(t, table.Has(DefaultKey))
	assert.True(t, table.Has(string(intent.Farewell)))
}

func TestLoad_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: `{"default": [`},
		{name: "not an object", content: `["hello"]`},
		{name: "values not lists", content: `{"default": "hi", "farewell": ["bye"]}`},
		{name: "non string reply", content: `{"default": [1], "farewell": ["bye"]}`},
		{name: "missing default", content: `{"farewell": ["bye"]}`},
		{name: "missing farewell", content: `{"default": ["hm"]}`},
		{name: "empty list", content: `{"default": [], "farewell": ["bye"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "responses.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, resource.ErrLoad))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrLoad))
}

func TestTable_PickFallsBackToDefault(t *testing.T) {
	table := NewTable(map[string][]string{
		DefaultKey: {"fallback"},
		"economy":  {},
	})
	picker := NewPicker(rand.New(rand.NewPCG(1, 2)))

	reply, err := table.Pick(picker, "economy")
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply)

	reply, err = table.Pick(picker, "unknown")
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply)
}

func TestTable_PickWithoutDefaultFails(t *testing.T) {
	table := NewTable(map[string][]string{})

	_, err := table.Pick(NewPicker(nil), "economy")
	require.Error(t, err)
}

func TestPicker_DeterministicWithSeed(t *testing.T) {
	replies := []string{"a", "b", "c", "d", "e"}

	first := NewPicker(rand.New(rand.NewPCG(42, 7)))
	second := NewPicker(rand.New(rand.NewPCG(42, 7)))

	for range 20 {
		assert.Equal(t, first.Pick(replies), second.Pick(replies))
	}
}

func TestPicker_StaysWithinCandidates(t *testing.T) {
	replies := []string{"a", "b", "c"}
	picker := NewPicker(nil)

	for range 50 {
		assert.Contains(t, replies, picker.Pick(replies))
	}

	assert.Empty(t, picker.Pick(nil))
}
