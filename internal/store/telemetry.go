package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMRequest is one recorded call to the LLM service.
type LLMRequest struct {
	ID           int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// PurposeUsage aggregates token usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// TelemetryRepo provides append and query access to recorded LLM calls.
type TelemetryRepo interface {
	// Append records one call. The ID and Timestamp fields are assigned
	// by the store.
	Append(ctx context.Context, req LLMRequest) error

	// List returns the most recent calls, newest first.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]LLMRequest, error)

	// Get returns one call by ID, or nil if not found.
	Get(ctx context.Context, id int64) (*LLMRequest, error)

	// UsageByPurpose aggregates successful-and-failed calls per purpose.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// UsageByModel aggregates token usage per model, for cost estimation.
	UsageByModel(ctx context.Context) ([]ModelUsage, error)
}

type telemetryRepo struct {
	db *sql.DB
}

func (r *telemetryRepo) Append(ctx context.Context, req LLMRequest) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO llm_requests
		(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Provider, req.Model, req.Purpose,
		req.InputTokens, req.OutputTokens, req.LatencyMs,
		boolToInt(req.Success), req.ErrorMessage, req.RequestBody, req.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

const selectColumns = `id, timestamp, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success,
	error_message, request_body, response_body`

func (r *telemetryRepo) List(ctx context.Context, limit int) ([]LLMRequest, error) {
	q := `SELECT ` + selectColumns + ` FROM llm_requests ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *telemetryRepo) Get(ctx context.Context, id int64) (*LLMRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM llm_requests WHERE id = ?`, id)

	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *telemetryRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT purpose, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		FROM llm_requests GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *telemetryRepo) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT model, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_requests GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (LLMRequest, error) {
	var req LLMRequest
	var success int
	err := s.Scan(
		&req.ID, &req.Timestamp, &req.Provider, &req.Model, &req.Purpose,
		&req.InputTokens, &req.OutputTokens, &req.LatencyMs, &success,
		&req.ErrorMessage, &req.RequestBody, &req.ResponseBody,
	)
	if err == sql.ErrNoRows {
		return req, err
	}
	if err != nil {
		return req, fmt.Errorf("scan llm request: %w", err)
	}
	req.Success = success != 0
	return req, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
