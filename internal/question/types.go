package question

import (
	"fmt"

	"github.com/samber/lo"
)

// Track is the coarse subject-matter filter for generated questions.
type Track string

const (
	TrackAnalytics    Track = "Analytics / BI-focused SQL"
	TrackDataEngineer Track = "Data Engineer-focused SQL"
)

// Tracks returns all tracks in display order.
func Tracks() []Track {
	return []Track{TrackAnalytics, TrackDataEngineer}
}

// Difficulty is the question difficulty level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Difficulties returns all difficulty levels in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// Dialect is the SQL variant the generated schema and reference solution
// should target.
type Dialect string

const (
	DialectPostgreSQL Dialect = "PostgreSQL"
	DialectMySQL      Dialect = "MySQL"
	DialectSnowflake  Dialect = "Snowflake"
	DialectBigQuery   Dialect = "BigQuery"
)

// Dialects returns all dialects in display order.
func Dialects() []Dialect {
	return []Dialect{DialectPostgreSQL, DialectMySQL, DialectSnowflake, DialectBigQuery}
}

// ParseTrack validates a user-supplied track string.
func ParseTrack(s string) (Track, error) {
	if !lo.Contains(Tracks(), Track(s)) {
		return "", fmt.Errorf("unknown track: %q", s)
	}
	return Track(s), nil
}

// ParseDifficulty validates a user-supplied difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	if !lo.Contains(Difficulties(), Difficulty(s)) {
		return "", fmt.Errorf("unknown difficulty: %q", s)
	}
	return Difficulty(s), nil
}

// ParseDialect validates a user-supplied dialect string.
func ParseDialect(s string) (Dialect, error) {
	if !lo.Contains(Dialects(), Dialect(s)) {
		return "", fmt.Errorf("unknown dialect: %q", s)
	}
	return Dialect(s), nil
}

// Question is a generated SQL practice question. Immutable once created;
// a new generate request replaces it wholesale.
type Question struct {
	// QuestionText is the problem statement shown to the user.
	QuestionText string

	// SchemaDescription holds the table definitions and sample data
	// context, rendered as a SQL code block.
	SchemaDescription string

	// ReferenceSQL is the reference solution.
	ReferenceSQL string

	// Explanation is the step-by-step walkthrough of the solution,
	// revealed together with the reference SQL.
	Explanation string

	// Difficulty and Track record the parameters the question was
	// generated for. Taken from the request, not the model's echo.
	Difficulty Difficulty
	Track      Track

	// Dialect is the SQL dialect the question targets.
	Dialect Dialect
}

// GenerateInput holds the selections for one generate request.
type GenerateInput struct {
	Track      Track
	Difficulty Difficulty
	Dialect    Dialect
}
