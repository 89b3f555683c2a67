package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/sqlcoach/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// telemetry decorator. Each operation makes exactly one attempt against
// the service; there is no retry layer.
func NewProvider(ctx context.Context, cfg Config, repo store.TelemetryRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base, err = NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithTelemetry(base, cfg.Provider, repo), nil
}

// NewProviderFromEnv builds a provider from SQLCOACH_* variables, falling
// back to bare API key discovery. Returns an error when no credential is
// configured; callers treat that as fatal at startup.
func NewProviderFromEnv(ctx context.Context, repo store.TelemetryRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, repo)
}
