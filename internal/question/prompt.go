package question

import (
	"fmt"
	"strings"
)

// trackGuidance steers the model toward realistic interview material for
// the chosen role.
var trackGuidance = map[Track]string{
	TrackAnalytics: `Focus on realistic interview-style SQL questions for Analytics/BI roles:
- Aggregate queries with GROUP BY, HAVING
- Multiple JOINs across tables
- Window functions (ROW_NUMBER, RANK, LAG, LEAD, etc.)
- Common BI metrics (conversion rates, retention, cohorts, running totals)
- Date/time manipulations
- Example domains: event analytics, e-commerce, product analytics, marketing metrics`,

	TrackDataEngineer: `Focus on realistic interview-style SQL questions for Data Engineer roles:
- Table design and schema reasoning
- Complex joins and data transformations
- Window functions for advanced analytics
- Slowly changing dimensions (SCD Type 1, Type 2)
- Data quality checks and deduplication
- Partitioning concepts (conceptual understanding)
- ETL-style data manipulation`,
}

// difficultyGuidance bounds question complexity per tier. The beginner tier
// explicitly forbids subqueries and window functions.
var difficultyGuidance = map[Difficulty]string{
	DifficultyBeginner:     "Keep it simple with 1-2 tables, basic JOINs, simple aggregations. No complex subqueries or window functions.",
	DifficultyIntermediate: "Use 2-3 tables, moderate complexity JOINs, window functions, CTEs, and subqueries are appropriate.",
	DifficultyAdvanced:     "Complex multi-table scenarios, advanced window functions, CTEs, complex business logic, edge cases.",
}

// buildSystemPrompt assembles the generation system prompt from the track,
// difficulty, and dialect selections.
func buildSystemPrompt(input GenerateInput) string {
	var b strings.Builder

	b.WriteString("You are an expert SQL interview coach. Generate realistic SQL practice questions for data analytics roles.\n\n")

	b.WriteString(trackGuidance[input.Track])
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Difficulty level: %s\n", input.Difficulty)
	b.WriteString(difficultyGuidance[input.Difficulty])
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "SQL Dialect: %s\n\n", input.Dialect)

	b.WriteString(`Guidelines:
- Create realistic, interview-style questions
- Keep schemas small (1-3 tables max)
- Provide clear table descriptions with sample data context
- Questions should test practical skills, not trivia
- Reference SQL should be production-quality code

Return ONLY a valid JSON object with this exact structure:
{
    "question_text": "Clear problem statement here",
    "schema_description": "Table definitions and sample data context",
    "reference_sql": "Well-formatted SQL solution",
    "explanation": "Step-by-step explanation of the solution approach",
`)
	fmt.Fprintf(&b, "    %q: %q,\n", "difficulty", string(input.Difficulty))
	fmt.Fprintf(&b, "    %q: %q\n}", "track", string(input.Track))

	return b.String()
}

// buildUserMessage builds the single user turn for a generate request.
func buildUserMessage(input GenerateInput) string {
	return fmt.Sprintf("Generate a %s level SQL question for %s using %s syntax.",
		strings.ToLower(string(input.Difficulty)), input.Track, input.Dialect)
}
