// Package schemas validates externally supplied JSON documents against
// embedded JSON Schemas: LLM feedback payloads and pre-structured resume
// payloads from the OCR collaborator.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError aggregates field-level schema violations.
type ValidationError struct {
	Schema string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document does not match %s schema: %s", e.Schema, strings.Join(e.Fields, "; "))
}

// Validate checks a JSON document against the named embedded schema
// (e.g. "feedback", "resume").
func Validate(name string, document []byte) error {
	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(data),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		verr.Fields = append(verr.Fields, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return verr
}
