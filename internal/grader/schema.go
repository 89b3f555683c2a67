package grader

import "github.com/abhisek/sqlcoach/internal/llm"

// GradingSchema validates the model's grading reply. Score is constrained
// to 0-100 and verdict/feedback must be non-empty.
var GradingSchema = &llm.Schema{
	Name:        "sql-grading",
	Description: "Evaluation of a user's SQL answer against the reference solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Overall score for the answer",
			},
			"verdict": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Correct, Partially Correct, or Incorrect",
			},
			"feedback": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Detailed, constructive feedback",
			},
			"suggested_answer": map[string]any{
				"type":        "string",
				"description": "Improved SQL solution, if applicable",
			},
		},
		"required":             []string{"score", "verdict", "feedback"},
		"additionalProperties": false,
	},
}
