package tutor

import "github.com/abhisek/examiz/internal/llm"

// ExplanationSchema defines the JSON schema for answer explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "Why the correct choice is right and the chosen one is wrong",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentences on why the correct choice is right",
			},
			"why_wrong": map[string]any{
				"type":        "string",
				"description": "1-2 sentences on the misconception behind the chosen answer; empty if unanswered",
			},
			"key_point": map[string]any{
				"type":        "string",
				"description": "One short fact worth remembering (under 15 words)",
			},
		},
		"required":             []any{"summary", "why_wrong", "key_point"},
		"additionalProperties": false,
	},
}

// draftItemSchema describes one drafted question.
var draftItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":        "string",
			"description": "The question stem, one or two sentences",
		},
		"choices": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    4,
			"maxItems":    4,
			"description": "Exactly four distinct, plausible options",
		},
		"answer_index": map[string]any{
			"type":        "integer",
			"minimum":     0,
			"maximum":     3,
			"description": "Zero-based index of the correct choice",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "One sentence on why the answer is correct",
		},
	},
	"required":             []any{"question", "choices", "answer_index", "explanation"},
	"additionalProperties": false,
}

// DraftSchema defines the JSON schema for drafted bank questions.
var DraftSchema = &llm.Schema{
	Name:        "question-drafts",
	Description: "A batch of multiple-choice exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": draftItemSchema,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
