package question

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt_BeginnerBounds(t *testing.T) {
	p := buildSystemPrompt(GenerateInput{
		Track:      TrackAnalytics,
		Difficulty: DifficultyBeginner,
		Dialect:    DialectPostgreSQL,
	})

	if !strings.Contains(p, "No complex subqueries or window functions.") {
		t.Error("beginner prompt should forbid subqueries and window functions")
	}
	if !strings.Contains(p, "Analytics/BI roles") {
		t.Error("prompt should carry the analytics track guidance")
	}
	if !strings.Contains(p, "SQL Dialect: PostgreSQL") {
		t.Error("prompt should name the dialect")
	}
}

func TestBuildSystemPrompt_TrackGuidanceDiffers(t *testing.T) {
	a := buildSystemPrompt(GenerateInput{Track: TrackAnalytics, Difficulty: DifficultyIntermediate, Dialect: DialectMySQL})
	d := buildSystemPrompt(GenerateInput{Track: TrackDataEngineer, Difficulty: DifficultyIntermediate, Dialect: DialectMySQL})

	if a == d {
		t.Error("track guidance should differ between tracks")
	}
	if !strings.Contains(d, "Slowly changing dimensions") {
		t.Error("data engineer prompt should mention SCDs")
	}
}

func TestBuildSystemPrompt_JSONStructure(t *testing.T) {
	p := buildSystemPrompt(GenerateInput{Track: TrackAnalytics, Difficulty: DifficultyAdvanced, Dialect: DialectSnowflake})

	for _, field := range []string{"question_text", "schema_description", "reference_sql", "explanation"} {
		if !strings.Contains(p, field) {
			t.Errorf("prompt should name the %s field", field)
		}
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Track:      TrackDataEngineer,
		Difficulty: DifficultyAdvanced,
		Dialect:    DialectBigQuery,
	})

	want := "Generate a advanced level SQL question for Data Engineer-focused SQL using BigQuery syntax."
	if msg != want {
		t.Errorf("unexpected user message:\n got: %q\nwant: %q", msg, want)
	}
}
