package grader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/sqlcoach/internal/llm"
	"github.com/abhisek/sqlcoach/internal/question"
)

// ErrEmptyAnswer is returned when the submitted answer is empty or
// whitespace-only. No model call is made in that case.
var ErrEmptyAnswer = errors.New("answer is empty")

// Result is the model's evaluation of one submitted answer against the
// current question. Immutable; replaced on the next submission.
type Result struct {
	// Score is 0-100.
	Score int

	// Verdict is the coarse correctness label, normally one of
	// "Correct", "Partially Correct", "Incorrect".
	Verdict string

	// Feedback is the detailed critique.
	Feedback string

	// SuggestedAnswer is an improved SQL solution, when the model
	// chose to provide one.
	SuggestedAnswer string
}

// Input carries everything the grading prompt needs.
type Input struct {
	Question *question.Question

	// Answer is the user's raw SQL.
	Answer string
}

// Config controls the Grader.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended grading settings. Temperature is
// kept low so repeat submissions of the same answer grade consistently.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.3,
	}
}

// Grader evaluates submitted SQL answers using the LLM provider.
type Grader struct {
	provider llm.Provider
	config   Config
}

// New creates a Grader with the given provider and config.
func New(provider llm.Provider, cfg Config) *Grader {
	return &Grader{provider: provider, config: cfg}
}

// gradingOutput is the raw LLM reply before field mapping.
type gradingOutput struct {
	Score           int    `json:"score"`
	Verdict         string `json:"verdict"`
	Feedback        string `json:"feedback"`
	SuggestedAnswer string `json:"suggested_answer"`
}

// Grade evaluates the user's answer against the question's reference
// solution. Empty or whitespace-only answers return ErrEmptyAnswer before
// any provider call.
func (g *Grader) Grade(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.Answer) == "" {
		return nil, ErrEmptyAnswer
	}
	if input.Question == nil {
		return nil, errors.New("no question to grade against")
	}

	ctx = llm.WithPurpose(ctx, "answer-grading")

	userMsg, err := buildGradingMessage(input)
	if err != nil {
		return nil, fmt.Errorf("build grading prompt: %w", err)
	}

	req := llm.Request{
		System: gradingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      GradingSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("answer grading failed: %w", err)
	}

	var raw gradingOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse grading reply: %w", err)
	}

	return &Result{
		Score:           raw.Score,
		Verdict:         raw.Verdict,
		Feedback:        raw.Feedback,
		SuggestedAnswer: raw.SuggestedAnswer,
	}, nil
}

const gradingSystemPrompt = `You are an expert SQL instructor grading student solutions.

Evaluate the user's SQL answer against the reference solution. Consider:
- Correctness: Does it solve the problem?
- Completeness: Are all requirements addressed?
- Efficiency: Is the approach reasonable?
- Code quality: Readability, formatting, best practices
- Edge cases: Does it handle special scenarios?

Be constructive and educational. Point out both strengths and areas for improvement.

IMPORTANT: Return ONLY a valid JSON object. Use \n for line breaks in feedback text, NOT actual newlines.

Return this exact structure:
{
    "score": 85,
    "verdict": "Correct|Partially Correct|Incorrect",
    "feedback": "Detailed feedback here (2-3 paragraphs max). Use \n for line breaks.",
    "suggested_answer": "Improved SQL if applicable (optional)"
}

Score scale:
- 90-100: Excellent, correct and well-written
- 70-89: Good, mostly correct with minor issues
- 50-69: Partially correct, significant issues but on right track
- 0-49: Incorrect or fundamentally flawed approach`

var gradingUserTemplate = template.Must(template.New("grading").Parse(`Question: {{.Question.QuestionText}}

Schema:
{{.Question.SchemaDescription}}

Reference Solution:
` + "```sql\n{{.Question.ReferenceSQL}}\n```" + `

User's Answer:
` + "```sql\n{{.Answer}}\n```" + `

Difficulty: {{.Question.Difficulty}}
Track: {{.Question.Track}}

Please grade the user's answer.`))

func buildGradingMessage(input Input) (string, error) {
	var buf bytes.Buffer
	if err := gradingUserTemplate.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}
