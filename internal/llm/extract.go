package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractObject pulls a JSON object out of a free-text LLM reply. Models
// routinely wrap JSON in prose ("Sure! {...} Hope that helps.") or markdown
// code fences; this strips both by taking the span from the first '{' to
// the last '}'.
//
// The heuristic is deliberately loose: stray braces in surrounding prose can
// widen the span, but the result is always validated against a JSON Schema
// afterwards, so a bad span fails there rather than being silently accepted.
func ExtractObject(text string) (json.RawMessage, error) {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in reply")
	}

	return json.RawMessage(s[start : end+1]), nil
}

// extractAndValidate is the common reply pipeline: when a schema was
// requested, locate the JSON object in the reply text and validate it.
// On failure the raw reply is preserved in the returned error.
func extractAndValidate(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}

	obj, err := ExtractObject(string(raw))
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}

	if err := validateResponse(schema, obj); err != nil {
		return nil, err
	}

	return obj, nil
}
