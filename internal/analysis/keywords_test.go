package analysis

import (
	"testing"
)

func TestMatchKeywordsBoundaries(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name      string
		text      string
		skill     string
		wantMatch bool
	}{
		{name: "exact word", text: "expert in java and tooling", skill: "java", wantMatch: true},
		{name: "substring of longer token", text: "expert in javascript", skill: "java", wantMatch: false},
		{name: "token with plus signs", text: "wrote services in c++ for years", skill: "c++", wantMatch: true},
		{name: "token with hash", text: "backend work in c# and .net", skill: "c#", wantMatch: true},
		{name: "plus token not inside other", text: "used g++ daily", skill: "c++", wantMatch: false},
		{name: "case insensitive", text: "Python and SQL daily", skill: "python", wantMatch: true},
		{name: "skill at start of text", text: "sql tuning specialist", skill: "sql", wantMatch: true},
		{name: "skill at end of text", text: "specialist in sql", skill: "sql", wantMatch: true},
		{name: "punctuation boundary", text: "skills: python, sql, git", skill: "sql", wantMatch: true},
		{name: "multiword skill", text: "built machine learning models", skill: "machine learning", wantMatch: true},
		{name: "absent skill", text: "python and sql daily", skill: "docker", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.MatchKeywords(tt.text, []string{tt.skill})
			matched := len(result.MatchedSkills) == 1
			if matched != tt.wantMatch {
				t.Errorf("MatchKeywords(%q, %q): matched=%v, want %v",
					tt.text, tt.skill, matched, tt.wantMatch)
			}
		})
	}
}

func TestMatchKeywordsScoring(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	text := "Experienced with python and sql in production."

	tests := []struct {
		name        string
		required    []string
		wantScore   float64
		wantMissing []string
	}{
		{
			name:        "all matched",
			required:    []string{"python", "sql"},
			wantScore:   100,
			wantMissing: []string{},
		},
		{
			name:        "two of three",
			required:    []string{"python", "sql", "docker"},
			wantScore:   66.7,
			wantMissing: []string{"docker"},
		},
		{
			name:        "one of three",
			required:    []string{"docker", "kubernetes", "python"},
			wantScore:   33.3,
			wantMissing: []string{"docker", "kubernetes"},
		},
		{
			name:        "none matched",
			required:    []string{"docker", "kubernetes"},
			wantScore:   0,
			wantMissing: []string{"docker", "kubernetes"},
		},
		{
			name:        "empty requirements",
			required:    nil,
			wantScore:   100,
			wantMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.MatchKeywords(text, tt.required)
			if result.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", result.Score, tt.wantScore)
			}
			if len(result.MissingSkills) != len(tt.wantMissing) {
				t.Fatalf("missing = %v, want %v", result.MissingSkills, tt.wantMissing)
			}
			for i, skill := range tt.wantMissing {
				if result.MissingSkills[i] != skill {
					t.Errorf("missing[%d] = %q, want %q (profile order must be preserved)",
						i, result.MissingSkills[i], skill)
				}
			}
		})
	}
}
