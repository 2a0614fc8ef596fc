package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stringListSchema = `{
	"type": "array",
	"items": {"type": "string"}
}`

func TestLoad_EmbeddedFallback(t *testing.T) {
	var out []string

	err := Load("words", "", []byte(`["a", "b"]`), stringListSchema, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestLoad_PathOverridesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(`["c"]`), 0o644))

	var out []string

	err := Load("words", path, []byte(`["a"]`), stringListSchema, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, out)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`["a",`), 0o644))

	wrongShape := filepath.Join(dir, "shape.json")
	require.NoError(t, os.WriteFile(wrongShape, []byte(`{"a": 1}`), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.json")},
		{name: "malformed json", path: badJSON},
		{name: "wrong shape", path: wrongShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []string

			err := Load("words", tt.path, nil, stringListSchema, &out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLoad))

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "words", loadErr.Resource)
			assert.Equal(t, tt.path, loadErr.Path)
		})
	}
}
