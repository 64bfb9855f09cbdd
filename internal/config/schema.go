package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildConfigJSONSchema returns the config file schema (draft 2020-12 subset)
// as a generic map.
func BuildConfigJSONSchema() map[string]any {
	strList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"payer_units": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"code":    map[string]any{"type": "string", "minLength": 1},
						"aliases": strList,
					},
					"required": []string{"code", "aliases"},
				},
			},
			"payer_tax_ids":   strList,
			"reject_entities": strList,
			"jargon_tokens":   strList,
			"name_aliases": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"min_name_len":     map[string]any{"type": "integer", "minimum": 1},
			"strict_name_len":  map[string]any{"type": "integer", "minimum": 1},
			"max_filename_len": map[string]any{"type": "integer", "minimum": 10},
			"barcode_tail_len": map[string]any{"type": "integer", "minimum": 1},
			"duplicate_marker": map[string]any{"type": "string", "minLength": 1},
			"output_extension": map[string]any{"type": "string", "pattern": `^\.`},
		},
		"required": []string{"payer_units"},
	}
}

// ValidateConfigJSON validates raw config bytes against the schema.
func ValidateConfigJSON(data []byte) error {
	b, err := json.Marshal(BuildConfigJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
