package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// The embedded schema checks only the container shape of a document (types
// of fields and nesting). Field presence and enum semantics stay with the
// builders so their errors keep their FieldError/StateError kinds.
//
//go:embed document_schema.json
var documentSchema []byte

// validateSchema checks raw YAML document bytes against the embedded
// JSON Schema before any decoding into the raw document shape.
func validateSchema(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to convert document to JSON: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to decode document JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("document_schema.json", bytes.NewReader(documentSchema)); err != nil {
		return fmt.Errorf("failed to add document schema: %w", err)
	}
	schema, err := compiler.Compile("document_schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile document schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaError(validationErr)
		}
		return fmt.Errorf("document schema validation failed: %w", err)
	}
	return nil
}

// formatSchemaError flattens a JSON Schema validation error tree into a
// readable message.
func formatSchemaError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("document schema validation failed")
	}
	out := messages[0]
	for _, m := range messages[1:] {
		out += "; " + m
	}
	return fmt.Errorf("document schema validation failed: %s", out)
}
