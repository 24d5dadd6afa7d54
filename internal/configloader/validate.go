package configloader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Schema is the JSON Schema for ctxport configuration files.
const Schema = `{
  "type": "object",
  "properties": {
    "language_map": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "filename_map": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "text_extensions": {
      "type": "array",
      "items": {"type": "string"}
    },
    "ignore_patterns": {
      "type": "array",
      "items": {"type": "string"}
    },
    "default_language": {"type": "string"}
  }
}`

const schemaResource = "ctxport.schema.json"

// ValidationError represents a configuration validation finding.
type ValidationError struct {
	// FilePath is the config file containing the error (if known).
	FilePath string

	// Field is the JSON pointer of the offending value (e.g., "/language_map/.py").
	Field string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors make the file unusable as written. Loading still degrades gracefully.
	Errors []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks raw config file content against Schema.
func Validate(data []byte) *ValidationResult {
	result := &ValidationResult{}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{Message: fmt.Sprintf("invalid JSON: %v", err)})
		return result
	}

	validateDocument(doc, result)
	return result
}

// ValidateFile reads and validates a config file.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	result := Validate(data)
	for i := range result.Errors {
		result.Errors[i].FilePath = path
	}
	return result, nil
}

func validateDocument(doc any, result *ValidationResult) {
	sch, err := compiledSchema()
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		return
	}

	err = sch.Validate(doc)
	if err == nil {
		return
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		return
	}

	printer := message.NewPrinter(language.English)
	for _, leaf := range leaves(verr) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "/" + strings.Join(leaf.InstanceLocation, "/"),
			Message: leaf.ErrorKind.LocalizedString(printer),
		})
	}
}

func leaves(verr *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(verr.Causes) == 0 {
		return []*jsonschema.ValidationError{verr}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range verr.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}

//nolint:gochecknoglobals // Compiled once, read-only afterwards.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	sch, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
})
