// Package schemas provides JSON Schema validation for the career dataset and stored profiles.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema names embedded in this package.
const (
	CareerCatalog = "career_catalog.schema.json"
	UserProfile   = "user_profile.schema.json"
)

// FieldError is one violation, located by its JSON field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError means the schema itself could not be read or compiled.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var compiled sync.Map // name -> *gojsonschema.Schema

func load(name string) (*gojsonschema.Schema, error) {
	if s, ok := compiled.Load(name); ok {
		return s.(*gojsonschema.Schema), nil
	}
	raw, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "embedded schema not found", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema compilation failed", Cause: err}
	}
	actual, _ := compiled.LoadOrStore(name, s)
	return actual.(*gojsonschema.Schema), nil
}

// Validate checks a JSON document against one of the embedded schemas.
// A document that does not parse is reported as a *ValidationError on (root).
func Validate(schemaName string, document []byte) error {
	schema, err := load(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
