package dataset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://dxtutor-dataset.json"

// fileSchema describes the JSON dataset file.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string", "minLength": 1},
		"diagnoses": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":    map[string]any{"type": "string", "minLength": 1},
					"label": map[string]any{"type": "string"},
					"level": map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []any{"id", "label"},
			},
		},
		"features": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":    map[string]any{"type": "string", "minLength": 1},
					"label": map[string]any{"type": "string"},
				},
				"required": []any{"id", "label"},
			},
		},
		"edges": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "string", "minLength": 1},
					"source":   map[string]any{"type": "string", "minLength": 1},
					"target":   map[string]any{"type": "string", "minLength": 1},
					"relation": map[string]any{"enum": []any{"parent_of", "has_symptom", "risk_factor"}},
				},
				"required": []any{"id", "source", "target", "relation"},
			},
		},
		"cases": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":           map[string]any{"type": "string", "minLength": 1},
					"title":        map[string]any{"type": "string"},
					"text":         map[string]any{"type": "string", "minLength": 1},
					"diagnosis_id": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []any{"id", "text", "diagnosis_id"},
			},
		},
		"scenarios": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":                map[string]any{"type": "string", "minLength": 1},
					"title":             map[string]any{"type": "string"},
					"note":              map[string]any{"type": "string", "minLength": 1},
					"gold_diagnosis_id": map[string]any{"type": "string"},
				},
				"required": []any{"id", "note"},
			},
		},
		"confusables": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string", "minLength": 1},
		},
	},
	"required": []any{"version", "diagnoses", "edges", "cases"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validateSchema checks raw JSON against fileSchema.
func validateSchema(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile dataset schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("dataset schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the Go map.
		b, err := json.Marshal(fileSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(b, &def); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
