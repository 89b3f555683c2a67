package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestStrictSchema_AllPropertiesRequired(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{"type": "string", "minLength": 1},
			"explanation":   map[string]any{"type": "string"},
			"difficulty":    map[string]any{"type": "string"},
		},
		"required": []any{"question_text"},
	}

	strict := strictSchema(def)

	required, ok := strict["required"].([]string)
	if !ok {
		t.Fatalf("expected []string required, got %T", strict["required"])
	}
	want := []string{"difficulty", "explanation", "question_text"}
	if !reflect.DeepEqual(required, want) {
		t.Errorf("required = %v, want %v", required, want)
	}
	if strict["additionalProperties"] != false {
		t.Error("expected additionalProperties false")
	}
}

func TestStrictSchema_StripsConstraintKeywords(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":   map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"verdict": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"score", "verdict"},
	}

	strict := strictSchema(def)

	props := strict["properties"].(map[string]any)
	score := props["score"].(map[string]any)
	if _, ok := score["minimum"]; ok {
		t.Error("minimum should be stripped for strict mode")
	}
	if _, ok := score["maximum"]; ok {
		t.Error("maximum should be stripped for strict mode")
	}
	verdict := props["verdict"].(map[string]any)
	if _, ok := verdict["minLength"]; ok {
		t.Error("minLength should be stripped for strict mode")
	}
	if score["type"] != "integer" || verdict["type"] != "string" {
		t.Error("type keywords must survive the rewrite")
	}
}

func TestStrictSchema_DoesNotMutateOriginal(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"feedback"},
	}

	strictSchema(def)

	props := def["properties"].(map[string]any)
	if _, ok := props["feedback"].(map[string]any)["minLength"]; !ok {
		t.Error("the original definition must keep its constraints for local validation")
	}
	if _, ok := def["additionalProperties"]; ok {
		t.Error("the original definition must not be rewritten")
	}
}

func TestOpenAIProvider_SendsStrictConformantSchema(t *testing.T) {
	var wireSchema map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ResponseFormat struct {
				JSONSchema struct {
					Schema map[string]any `json:"schema"`
					Strict bool           `json:"strict"`
				} `json:"json_schema"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !body.ResponseFormat.JSONSchema.Strict {
			t.Error("expected strict structured output")
		}
		wireSchema = body.ResponseFormat.JSONSchema.Schema

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": `{"verdict":"Correct"}`}}},
			"usage":   map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL
	p := &OpenAIProvider{client: openai.NewClientWithConfig(config), model: "gpt-4o-mini"}

	schema := &Schema{
		Name: "grading",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"verdict": map[string]any{"type": "string", "minLength": 1},
				"notes":   map[string]any{"type": "string"},
			},
			"required": []any{"verdict"},
		},
	}
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "grade"}},
		Schema:    schema,
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wireSchema == nil {
		t.Fatal("no schema captured on the wire")
	}
	required, _ := wireSchema["required"].([]any)
	if len(required) != 2 {
		t.Errorf("all properties must be required on the wire, got %v", required)
	}
	if wireSchema["additionalProperties"] != false {
		t.Error("expected additionalProperties false on the wire")
	}
	verdict := wireSchema["properties"].(map[string]any)["verdict"].(map[string]any)
	if _, ok := verdict["minLength"]; ok {
		t.Error("constraint keywords must not reach the wire")
	}
}
