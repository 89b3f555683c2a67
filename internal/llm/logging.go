package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/sqlcoach/internal/store"
)

// TelemetryProvider is a decorator that records every LLM call in the
// telemetry store.
type TelemetryProvider struct {
	inner    Provider
	provider string
	repo     store.TelemetryRepo
}

// WithTelemetry wraps a Provider with call recording. The provider name
// ("anthropic", "openai", ...) is stored alongside the model on each record.
func WithTelemetry(p Provider, provider string, repo store.TelemetryRepo) Provider {
	return &TelemetryProvider{inner: p, provider: provider, repo: repo}
}

func (t *TelemetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := t.inner.Generate(ctx, req)

	rec := store.LLMRequest{
		Provider:    t.provider,
		Model:       t.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
		rec.ResponseBody = string(resp.Content)
	}

	if err != nil {
		rec.ErrorMessage = err.Error()
		if raw, ok := RawContent(err); ok {
			rec.ResponseBody = string(raw)
		}
	}

	// Recording is best-effort; a telemetry failure never fails the call.
	if recErr := t.repo.Append(ctx, rec); recErr != nil {
		slog.Warn("failed to record LLM request", "error", recErr)
	}

	return resp, err
}

func (t *TelemetryProvider) ModelID() string {
	return t.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
