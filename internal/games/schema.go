package games

import "github.com/abhisek/linguaspark/internal/llm"

var optionIDs = []any{"a", "b", "c", "d"}

// QuizSchema defines the JSON schema for a generated quiz.
var QuizSchema = &llm.Schema{
	Name:        "language-quiz",
	Description: "Five multiple-choice questions about a language",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": QuizLength,
				"maxItems": QuizLength,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question, in English unless it quotes the target language",
						},
						"options": map[string]any{
							"type":     "array",
							"minItems": 4,
							"maxItems": 4,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"id":   map[string]any{"type": "string", "enum": optionIDs},
									"text": map[string]any{"type": "string"},
								},
								"required":             []any{"id", "text"},
								"additionalProperties": false,
							},
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"enum":        optionIDs,
							"description": "The id of the one correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why the answer is right",
						},
					},
					"required":             []any{"question", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
