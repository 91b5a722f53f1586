package tutor

import "github.com/abhisek/linguaspark/internal/llm"

// FeedbackSchema defines the JSON schema for grading a learner turn.
var FeedbackSchema = &llm.Schema{
	Name:        "speech-feedback",
	Description: "Grammar and pronunciation feedback on a language learner's message",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pronunciation": map[string]any{
				"type": "string",
				"enum": []any{"good", "needs-work"},
			},
			"grammar": map[string]any{
				"type": "string",
				"enum": []any{"good", "needs-work"},
			},
			"corrections": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Recommended corrections, empty when none are needed",
			},
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
		},
		"required":             []any{"pronunciation", "grammar", "corrections", "score"},
		"additionalProperties": false,
	},
}

// RecommendationSchema defines the JSON schema for dashboard
// recommendations.
var RecommendationSchema = &llm.Schema{
	Name:        "recommendations",
	Description: "Three learning activities suited to the learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":    map[string]any{"type": "string"},
						"type":     map[string]any{"type": "string", "enum": []any{"Lesson", "Game", "Practice"}},
						"duration": map[string]any{"type": "string", "description": "e.g. \"10 min\""},
						"icon":     map[string]any{"type": "string", "description": "a single emoji"},
						"link":     map[string]any{"type": "string", "description": "e.g. /lessons/basics-1 or /practice/restaurant"},
					},
					"required":             []any{"title", "type", "duration", "icon", "link"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"recommendations"},
		"additionalProperties": false,
	},
}
