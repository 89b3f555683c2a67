package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "anthropic/claude-3.5-haiku",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-3.5-haiku" {
			t.Errorf("model = %q, want %q", p.ModelID(), "anthropic/claude-3.5-haiku")
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{
			Model: "anthropic/claude-3.5-haiku",
		})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("custom model pass-through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "meta-llama/llama-3-8b",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Model ID is used as-is; no friendly-name mapping for OpenRouter.
		if p.ModelID() != "meta-llama/llama-3-8b" {
			t.Errorf("model = %q, want %q", p.ModelID(), "meta-llama/llama-3-8b")
		}
	})
}
