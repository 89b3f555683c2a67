package llm

import (
	"context"
	"encoding/json"
)

// Provider is the outbound boundary to the LLM completion service.
// Both question generation and answer grading go through this interface.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its reply. When the
	// request carries a Schema, the reply Content is the JSON object
	// extracted from the reply text and validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single completion request.
type Request struct {
	// System is the system prompt framing the task.
	System string

	// Messages is the conversation. sqlcoach always sends a single user
	// message per operation.
	Messages []Message

	// Schema, when set, describes the JSON object the reply must contain.
	// Providers with native structured output also forward it to the
	// service; all providers validate the extracted reply against it.
	Schema *Schema

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature controls randomness, 0.0–1.0. Zero means the provider
	// default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON object expected from the LLM.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "sql-question".
	Name string

	// Description tells the LLM what the object represents.
	Description string

	// Definition is the JSON Schema definition.
	Definition map[string]any
}

// Response holds the LLM's reply.
type Response struct {
	// Content is the reply. With a Schema in the request this is the
	// validated JSON object; without one it is the raw reply text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
