package lessons

import "github.com/abhisek/linguaspark/internal/llm"

// SectionSchema defines the JSON schema for lesson section content.
var SectionSchema = &llm.Schema{
	Name:        "lesson-section",
	Description: "Study material for one section of a language lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short heading for the material (3-8 words)",
			},
			"body": map[string]any{
				"type":        "string",
				"description": "The passage, dialogue, or exercises as plain text with line breaks",
			},
			"vocabulary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term":    map[string]any{"type": "string"},
						"meaning": map[string]any{"type": "string"},
					},
					"required":             []any{"term", "meaning"},
					"additionalProperties": false,
				},
				"description": "Up to 10 key terms used in the material",
			},
		},
		"required":             []any{"title", "body", "vocabulary"},
		"additionalProperties": false,
	},
}
