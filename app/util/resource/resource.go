// Package resource loads the static JSON tables the bot ships with. Each table has an embedded
// default that a configured path replaces, and every document is checked against a JSON
// schema before it is decoded.
package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/xeipuuv/gojsonschema"
)

const embeddedPath = "<embedded>"

var ErrLoad = errors.New("resource load failed")

// LoadError reports a resource that is missing, unreadable or has the wrong shape.
type LoadError struct {
	Resource string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Resource, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// Load reads the named resource from path, or from fallback when path is empty, validates it
// against schema and decodes it into out.
func Load(name, path string, fallback []byte, schema string, out any) error {
	data := fallback
	source := embeddedPath

	if path != "" {
		source = path

		fileData, err := os.ReadFile(path)
		if err != nil {
			return &LoadError{Resource: name, Path: source, Err: err}
		}
		data = fileData
	}

	if err := validate(data, schema); err != nil {
		return &LoadError{Resource: name, Path: source, Err: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &LoadError{Resource: name, Path: source, Err: fmt.Errorf("decode: %w", err)}
	}

	return nil
}

func validate(data []byte, schema string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return oops.Errorf("invalid JSON: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}

	return oops.
		With("problems", problems).
		Errorf("schema mismatch: %s", strings.Join(problems, "; "))
}
