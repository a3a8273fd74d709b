package analysis

import (
	"strings"
	"testing"
)

func TestAnalyzeFormatScoreWithinBounds(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name string
		text string
	}{
		{name: "empty-ish text", text: "x"},
		{name: "single paragraph", text: strings.Repeat("word ", 500)},
		{name: "well formed", text: sampleResume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.AnalyzeFormat(tt.text)
			if result.Score < 0 || result.Score > 100 {
				t.Errorf("score %d outside [0, 100]", result.Score)
			}
		})
	}
}

func TestAnalyzeFormatSuggestions(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name        string
		text        string
		wantMention string
	}{
		{
			name:        "no bullets",
			text:        "Worked at a company.\nDid some things there.\nThen left.",
			wantMention: "bullet",
		},
		{
			name:        "no numbers",
			text:        "- did work\n- did more work\n- kept doing work",
			wantMention: "Quantify",
		},
		{
			name:        "too short",
			text:        "- shipped 3 features in 2022",
			wantMention: "short",
		},
		{
			name:        "unbroken block",
			text:        "- item 1\n" + strings.Repeat("verylongunbrokenline ", 40),
			wantMention: "unbroken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.AnalyzeFormat(tt.text)
			found := false
			for _, s := range result.Suggestions {
				if strings.Contains(s, tt.wantMention) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a suggestion mentioning %q, got %v", tt.wantMention, result.Suggestions)
			}
		})
	}
}

func TestAnalyzeFormatRewardsStructure(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Bullet-heavy, quantified, inside the length band, short lines.
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("- delivered a project milestone improving throughput by 25% this quarter\n")
	}
	good := engine.AnalyzeFormat(sb.String())

	poor := engine.AnalyzeFormat("Worked at a company doing things for some time and then left quietly.")

	if good.Score <= poor.Score {
		t.Errorf("structured resume scored %d, unstructured scored %d; expected a higher score for structure",
			good.Score, poor.Score)
	}
	if good.Score != 100 {
		t.Errorf("resume meeting every aspect should score 100, got %d", good.Score)
	}
	if len(good.Suggestions) != 0 {
		t.Errorf("resume meeting every aspect should produce no suggestions, got %v", good.Suggestions)
	}
}
