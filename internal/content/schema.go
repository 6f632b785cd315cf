package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Bulk-import items are shape-checked against a JSON schema before any field
// normalization runs, so importers get one precise message for structurally
// broken items instead of whichever field check happens to fire first.
// Semantic rules (option counts, difficulty values) stay in the Normalize
// functions.

const questionItemSchema = `{
	"type": "object",
	"required": ["stem"],
	"properties": {
		"stem": {"type": "string", "minLength": 1},
		"explanation": {"type": ["string", "null"]},
		"stimulus": {"type": ["string", "null"]},
		"type": {"type": "string"},
		"difficulty": {"type": "string"},
		"group_id": {"type": ["string", "null"]},
		"answer": {"type": ["string", "null"]},
		"options": {"type": ["array", "string", "object"]},
		"tags": {"type": "array", "items": {"type": "integer", "minimum": 1}}
	}
}`

const tagItemSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"display_name": {"type": "string"}
	}
}`

var (
	questionItemLoader = gojsonschema.NewStringLoader(questionItemSchema)
	tagItemLoader      = gojsonschema.NewStringLoader(tagItemSchema)
)

// ValidateQuestionItem shape-checks one bulk question payload.
func ValidateQuestionItem(raw json.RawMessage) error {
	return validateItem(questionItemLoader, raw)
}

// ValidateTagItem shape-checks one bulk tag payload.
func ValidateTagItem(raw json.RawMessage) error {
	return validateItem(tagItemLoader, raw)
}

func validateItem(schema gojsonschema.JSONLoader, raw json.RawMessage) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema check: %w", err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return &ValidationError{Message: strings.Join(messages, "; ")}
}
