package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const fileSchemaURL = "schema://question-bank.json"

// fileSchema is the JSON Schema every bank document must satisfy before
// semantic validation runs.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string", "minLength": 1},
		"categories": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"key":   map[string]any{"type": "string", "minLength": 1},
					"label": map[string]any{"type": "string"},
				},
				"required": []any{"key"},
			},
		},
		"baseline": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"correct": map[string]any{"type": "integer", "minimum": 0},
					"total":   map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []any{"correct", "total"},
			},
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":           map[string]any{"type": "string", "minLength": 1},
					"category":     map[string]any{"type": "string", "minLength": 1},
					"difficulty":   map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
					"question":     map[string]any{"type": "string", "minLength": 1},
					"choices":      map[string]any{"type": "array", "minItems": 2, "items": map[string]any{"type": "string"}},
					"answer_index": map[string]any{"type": "integer", "minimum": 0},
					"explanation":  map[string]any{"type": "string"},
				},
				"required": []any{"id", "category", "difficulty", "question", "choices", "answer_index"},
			},
		},
	},
	"required": []any{"version", "categories", "questions"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(fileSchemaURL, fileSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(fileSchemaURL)
	})
	return compiled, compileErr
}

// checkSchema validates a decoded YAML document against the bank schema.
// The document is round-tripped through JSON so numbers reach the validator
// in the representation it expects.
func checkSchema(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode bank document: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode bank document: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
