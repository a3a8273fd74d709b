package analysis

import (
	"strings"
	"testing"

	apperrors "resumelens/internal/errors"
	"resumelens/internal/types"
)

const sampleResume = `Jordan Reyes
jordan.reyes@example.com | +1 415 555 0134 | San Francisco, CA

Summary
Backend engineer with six years of experience building data platforms
and internal services. Comfortable owning systems end to end, from
schema design through deployment and monitoring in production.

Skills
- python, sql, go, linux, git
- postgresql, redis, terraform

Experience
Senior Software Engineer, Meridian Data (2021 - present)
- Built a reporting pipeline in python that processes 40 million rows daily
- Reduced query latency by 60% by rewriting the hottest sql paths
- Mentored 3 junior engineers and led the on-call rotation for a year
Software Engineer, Halcyon Labs (2018 - 2021)
- Developed internal billing services and maintained 99.9% uptime
- Migrated legacy reports to a new warehouse with zero data loss

Education
B.S. Computer Science, State University (2018)

Projects
- Open source contributor to a sql linting tool with 2,000 stars
- Built a personal finance tracker used by 500 people

Certifications
AWS Certified Solutions Architect (2022)

Achievements
- Engineering excellence award, Meridian Data, 2023
`

func testProfile(skills ...string) types.RoleProfile {
	return types.RoleProfile{
		Category:       "tech",
		Name:           "Backend Developer",
		RequiredSkills: skills,
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "whitespace only", input: "   \n\t  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Analyze(tt.input, testProfile("python"))
			if err == nil {
				t.Fatal("expected error for empty input, got nil")
			}
			if code := apperrors.CodeOf(err); code != apperrors.ErrCodeEmptyInput {
				t.Errorf("expected code %s, got %s", apperrors.ErrCodeEmptyInput, code)
			}
			if result.DocumentType == types.DocumentTypeResume {
				t.Error("empty input must not classify as a resume")
			}
		})
	}
}

func TestAnalyzeNotAResume(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Plenty of indicator words but far fewer than the word minimum.
	shortDoc := "education experience skills projects summary contact"

	result, err := engine.Analyze(shortDoc, testProfile("python"))
	if err == nil {
		t.Fatal("expected error for non-resume input, got nil")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeNotAResume {
		t.Errorf("expected code %s, got %s", apperrors.ErrCodeNotAResume, code)
	}
	if result.DocumentType != types.DocumentTypeOther {
		t.Errorf("expected document type %s, got %s", types.DocumentTypeOther, result.DocumentType)
	}
	if result.ATSScore != 0 {
		t.Errorf("rejected document must not carry a score, got %d", result.ATSScore)
	}
}

func TestAnalyzeKeywordScore(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result, err := engine.Analyze(sampleResume, testProfile("python", "sql", "docker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.KeywordMatch.Score != 66.7 {
		t.Errorf("expected keyword score 66.7 for 2 of 3 skills, got %v", result.KeywordMatch.Score)
	}
	if len(result.KeywordMatch.MissingSkills) != 1 || result.KeywordMatch.MissingSkills[0] != "docker" {
		t.Errorf("expected missing skills [docker], got %v", result.KeywordMatch.MissingSkills)
	}
}

func TestAnalyzeEmptyRequiredSkills(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result, err := engine.Analyze(sampleResume, testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.KeywordMatch.Score != 100 {
		t.Errorf("empty requirement list must score 100, got %v", result.KeywordMatch.Score)
	}
	if len(result.KeywordMatch.MissingSkills) != 0 {
		t.Errorf("expected no missing skills, got %v", result.KeywordMatch.MissingSkills)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	profile := testProfile("python", "sql", "docker")

	first, err := engine.Analyze(sampleResume, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := engine.Analyze(sampleResume, profile)
		if err != nil {
			t.Fatalf("unexpected error on run %d: %v", i, err)
		}
		if again.ATSScore != first.ATSScore ||
			again.SectionScore != first.SectionScore ||
			again.FormatScore != first.FormatScore ||
			again.KeywordMatch.Score != first.KeywordMatch.Score {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result, err := engine.Analyze(sampleResume, testProfile("python", "sql"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := map[string]int{
		"ats":     result.ATSScore,
		"section": result.SectionScore,
		"format":  result.FormatScore,
	}
	for name, s := range scores {
		if s < 0 || s > 100 {
			t.Errorf("%s score %d outside [0, 100]", name, s)
		}
	}
	if result.KeywordMatch.Score < 0 || result.KeywordMatch.Score > 100 {
		t.Errorf("keyword score %v outside [0, 100]", result.KeywordMatch.Score)
	}
}

func TestAnalyzeMoreSkillsNeverLowersKeywordScore(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	base, err := engine.Analyze(sampleResume, testProfile("python", "sql", "docker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same requirements, but the resume now also mentions docker.
	richer := sampleResume + "\n- Containerized all services with docker\n"
	improved, err := engine.Analyze(richer, testProfile("python", "sql", "docker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if improved.KeywordMatch.Score < base.KeywordMatch.Score {
		t.Errorf("adding a matched skill lowered the score: %v -> %v",
			base.KeywordMatch.Score, improved.KeywordMatch.Score)
	}
}

func TestAnalyzeSuggestionsForMissingSkills(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result, err := engine.Analyze(sampleResume, testProfile("python", "sql", "docker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	skillSuggestions := result.Suggestions[types.CategorySkills]
	found := false
	for _, s := range skillSuggestions {
		if strings.Contains(strings.ToLower(s), "docker") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a skills suggestion mentioning docker, got %v", skillSuggestions)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	engine := NewEngine(DefaultConfig())
	profile := testProfile("python", "sql", "docker", "kubernetes", "go")

	b.ResetTimer()
	for b.Loop() {
		_, _ = engine.Analyze(sampleResume, profile)
	}
}
