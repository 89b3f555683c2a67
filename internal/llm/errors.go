package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
// Surfaced to the user like any other failure; sqlcoach does not retry.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the reply was not valid JSON or did not
// conform to the requested schema. Content carries the raw reply so the UI
// can show it for debugging.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the reply was truncated at the MaxTokens
// limit and cannot be trusted to contain a complete JSON object.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// RawContent returns the raw reply attached to err, if any. The web layer
// uses this to show the unparseable reply next to the error message.
func RawContent(err error) (json.RawMessage, bool) {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return inv.Content, true
	}
	var trunc *ErrMaxTokensExceeded
	if errors.As(err, &trunc) {
		return trunc.Content, true
	}
	return nil, false
}
