package question

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/sqlcoach/internal/llm"
)

// Generator produces SQL practice questions.
type Generator interface {
	// Generate produces a single question for the given selections.
	// Returns a validated Question, or an error when the model call
	// fails or the reply does not parse.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// Config controls the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the reply.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generator settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM reply before field mapping.
type questionOutput struct {
	QuestionText      string `json:"question_text"`
	SchemaDescription string `json:"schema_description"`
	ReferenceSQL      string `json:"reference_sql"`
	Explanation       string `json:"explanation"`
	Difficulty        string `json:"difficulty"`
	Track             string `json:"track"`
}

// Generate produces a single question for the given selections.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: buildSystemPrompt(input),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse question reply: %w", err)
	}

	// The request selections are authoritative; the model's echoed
	// difficulty/track are ignored.
	return &Question{
		QuestionText:      raw.QuestionText,
		SchemaDescription: raw.SchemaDescription,
		ReferenceSQL:      raw.ReferenceSQL,
		Explanation:       raw.Explanation,
		Difficulty:        input.Difficulty,
		Track:             input.Track,
		Dialect:           input.Dialect,
	}, nil
}
