package formatters

import (
	"strings"
	"testing"

	"resumelens/internal/types"
)

func sampleAnalysis() types.AnalysisResult {
	return types.AnalysisResult{
		DocumentType: types.DocumentTypeResume,
		ATSScore:     72,
		SectionScore: 75,
		FormatScore:  80,
		KeywordMatch: types.KeywordMatchResult{
			Score:         66.7,
			MatchedSkills: []string{"python", "sql"},
			MissingSkills: []string{"docker"},
		},
		Sections: map[types.Section]types.SectionFinding{
			types.SectionSkills: {Present: true, Quality: types.QualityAdequate},
		},
		Suggestions: map[types.SuggestionCategory][]string{
			types.CategorySkills: {"Add \"docker\" to your skills section if you have hands-on experience with it"},
		},
		Role:     "Backend Developer",
		Category: "tech",
	}
}

func TestFormatAnalysisResult(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name     string
		format   string
		contains []string
	}{
		{
			name:     "text",
			format:   "text",
			contains: []string{"ATS Score: 72/100", "66.7", "docker", "Backend Developer"},
		},
		{
			name:     "markdown",
			format:   "markdown",
			contains: []string{"# ATS Analysis", "| Keyword Match | 66.7 |", "docker"},
		},
		{
			name:     "json",
			format:   "json",
			contains: []string{"\"atsScore\": 72", "\"docker\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Format(sampleAnalysis(), tt.format)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("%s output missing %q:\n%s", tt.format, want, out)
				}
			}
		})
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleAnalysis(), "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatRoleList(t *testing.T) {
	registry := NewFormatterRegistry()
	list := RoleList{
		Category: "tech",
		Roles: []types.RoleProfile{
			{Category: "tech", Name: "Backend Developer", RequiredSkills: []string{"python", "sql"}},
		},
	}

	out, err := registry.Format(list, "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(out, "Backend Developer") || !strings.Contains(out, "python") {
		t.Errorf("role list output incomplete:\n%s", out)
	}
}

func TestFormatHistoryEmpty(t *testing.T) {
	registry := NewFormatterRegistry()
	out, err := registry.Format(HistoryList{}, "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(out, "No analyses") {
		t.Errorf("unexpected empty history output: %s", out)
	}
}
