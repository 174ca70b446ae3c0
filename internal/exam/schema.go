package exam

import "github.com/abhisek/tutorflow/internal/llm"

// InputSchema describes the data rendered into the exam prompt: the
// request plus the composed mix.
var InputSchema = &llm.Schema{
	Name:        "practice-exam-input",
	Description: "Request for a practice exam",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"examTopic": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": `The topic of the exam (e.g., "UPSC Civil Services").`,
			},
			"numQuestions": map[string]any{
				"type":        "integer",
				"minimum":     MinQuestions,
				"maximum":     MaxQuestions,
				"description": "The number of questions to generate.",
			},
			"seenQuestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Question texts the learner has already seen and must not be repeated.",
			},
			"mix": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"multipleChoice": map[string]any{"type": "integer", "minimum": 0},
					"trueFalse":      map[string]any{"type": "integer", "minimum": 0},
					"freeText":       map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []any{"multipleChoice", "trueFalse", "freeText"},
			},
		},
		"required": []any{"examTopic", "numQuestions", "mix"},
	},
}

// OutputSchema is the shape requested from the model. Every property is
// required and no extras are allowed so strict structured output modes
// accept it.
var OutputSchema = &llm.Schema{
	Name:        "practice-exam",
	Description: "A set of generated, unique practice exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "An array of generated, unique exam questions.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionId": map[string]any{
							"type":        "string",
							"description": `A unique identifier for the question, like "q1".`,
						},
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{string(MultipleChoice), string(TrueFalse), string(FreeText)},
							"description": "The type of question.",
						},
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner.",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for multipleChoice. Empty for trueFalse and freeText.",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": `One of the options for multipleChoice, "True" or "False" for trueFalse, a model answer for freeText.`,
						},
						"pointsPossible": map[string]any{
							"type":        "integer",
							"description": "Points awarded for a correct answer.",
						},
					},
					"required":             []any{"questionId", "type", "prompt", "options", "correctAnswer", "pointsPossible"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
