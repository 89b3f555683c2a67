package question

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/sqlcoach/internal/llm"
)

func validQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"question_text": "Find the top 5 customers by total order value in 2024.",
		"schema_description": "customers(id, name, country)\norders(id, customer_id, order_date, total_amount)",
		"reference_sql": "SELECT c.name, SUM(o.total_amount) AS total\nFROM customers c\nJOIN orders o ON o.customer_id = c.id\nWHERE o.order_date >= '2024-01-01'\nGROUP BY c.name\nORDER BY total DESC\nLIMIT 5;",
		"explanation": "Join customers to orders, filter by year, aggregate and rank.",
		"difficulty": "Beginner",
		"track": "Analytics / BI-focused SQL"
	}`)
}

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), GenerateInput{
		Track:      TrackAnalytics,
		Difficulty: DifficultyBeginner,
		Dialect:    DialectPostgreSQL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.QuestionText == "" || q.SchemaDescription == "" || q.ReferenceSQL == "" || q.Explanation == "" {
		t.Error("all question fields should be populated")
	}
	if q.Track != TrackAnalytics {
		t.Errorf("unexpected track: %q", q.Track)
	}
	if q.Difficulty != DifficultyBeginner {
		t.Errorf("unexpected difficulty: %q", q.Difficulty)
	}
	if q.Dialect != DialectPostgreSQL {
		t.Errorf("unexpected dialect: %q", q.Dialect)
	}
}

func TestGenerate_RequestSelectionsWin(t *testing.T) {
	// The model echoes Beginner/Analytics but the request asked for
	// Advanced/Data Engineer. The request wins.
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), GenerateInput{
		Track:      TrackDataEngineer,
		Difficulty: DifficultyAdvanced,
		Dialect:    DialectSnowflake,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Difficulty != DifficultyAdvanced {
		t.Errorf("expected Advanced, got %q", q.Difficulty)
	}
	if q.Track != TrackDataEngineer {
		t.Errorf("expected data engineer track, got %q", q.Track)
	}
}

func TestGenerate_MissingField(t *testing.T) {
	raw := json.RawMessage(`{
		"question_text": "Find something.",
		"schema_description": "t(a, b)",
		"explanation": "..."
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Track:      TrackAnalytics,
		Difficulty: DifficultyBeginner,
		Dialect:    DialectMySQL,
	})
	if err == nil {
		t.Fatal("expected error when reference_sql is missing")
	}
	var invErr *llm.ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestGenerate_EmptyField(t *testing.T) {
	raw := json.RawMessage(`{
		"question_text": "",
		"schema_description": "t(a, b)",
		"reference_sql": "SELECT 1;",
		"explanation": "..."
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Track:      TrackAnalytics,
		Difficulty: DifficultyBeginner,
		Dialect:    DialectMySQL,
	})
	if err == nil {
		t.Fatal("expected error for empty question_text")
	}
}

func TestGenerate_ProseWrappedReply(t *testing.T) {
	wrapped := json.RawMessage("Here is your question:\n" + string(validQuestionJSON()) + "\nGood luck!")
	mock := llm.NewMockProvider(llm.MockResponse{Content: wrapped})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), GenerateInput{
		Track:      TrackAnalytics,
		Difficulty: DifficultyIntermediate,
		Dialect:    DialectBigQuery,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.QuestionText == "" {
		t.Error("expected question text from prose-wrapped reply")
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Track:      TrackAnalytics,
		Difficulty: DifficultyBeginner,
		Dialect:    DialectPostgreSQL,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit to surface, got: %T", err)
	}
}
