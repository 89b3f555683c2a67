package question

import "testing"

func TestParseTrack(t *testing.T) {
	if _, err := ParseTrack("Analytics / BI-focused SQL"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseTrack("DBA track"); err == nil {
		t.Error("expected error for unknown track")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties() {
		if _, err := ParseDifficulty(string(d)); err != nil {
			t.Errorf("%s should parse: %v", d, err)
		}
	}
	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
	if _, err := ParseDifficulty(""); err == nil {
		t.Error("expected error for empty difficulty")
	}
}

func TestParseDialect(t *testing.T) {
	for _, d := range Dialects() {
		if _, err := ParseDialect(string(d)); err != nil {
			t.Errorf("%s should parse: %v", d, err)
		}
	}
	if _, err := ParseDialect("Access"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}
