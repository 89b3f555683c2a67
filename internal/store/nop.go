package store

import "context"

// NopTelemetry is a TelemetryRepo that records nothing. Used in tests and
// when the operator disables the telemetry database.
type NopTelemetry struct{}

func (NopTelemetry) Append(context.Context, LLMRequest) error { return nil }

func (NopTelemetry) List(context.Context, int) ([]LLMRequest, error) { return nil, nil }

func (NopTelemetry) Get(context.Context, int64) (*LLMRequest, error) { return nil, nil }

func (NopTelemetry) UsageByPurpose(context.Context) ([]PurposeUsage, error) { return nil, nil }

func (NopTelemetry) UsageByModel(context.Context) ([]ModelUsage, error) { return nil, nil }
