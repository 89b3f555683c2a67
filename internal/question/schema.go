package question

import "github.com/abhisek/sqlcoach/internal/llm"

// QuestionSchema defines the JSON schema for generation replies. The four
// text fields must be present and non-empty; difficulty and track are the
// model's echo of the request and are not trusted.
var QuestionSchema = &llm.Schema{
	Name:        "sql-question",
	Description: "A single SQL practice question with schema, reference solution, and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Clear problem statement shown to the user",
			},
			"schema_description": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Table definitions and sample data context",
			},
			"reference_sql": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Well-formatted SQL solution",
			},
			"explanation": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Step-by-step explanation of the solution approach",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"description": "Echo of the requested difficulty level",
			},
			"track": map[string]any{
				"type":        "string",
				"description": "Echo of the requested track",
			},
		},
		"required": []any{"question_text", "schema_description", "reference_sql", "explanation"},
	},
}
