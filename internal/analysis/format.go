package analysis

import (
	"strings"
	"unicode/utf8"

	"resumelens/internal/types"
)

// Point caps per formatting aspect. They sum to 100, and each aspect
// awards at most its cap, so the total never needs rescaling.
const (
	bulletPointsCap   = 30
	quantifiableCap   = 25
	lengthBandCap     = 25
	readableBlocksCap = 20
)

var bulletMarkers = []string{"-", "*", "•", "·", "●", "▪", "‣"}

// AnalyzeFormat scores structural hygiene: bullet usage, quantified
// statements, overall length, and the absence of wall-of-text blocks.
// Each aspect that falls short contributes a concrete suggestion.
func (e *Engine) AnalyzeFormat(text string) types.FormatResult {
	lines := strings.Split(text, "\n")

	contentLines := 0
	bulletLines := 0
	quantifiedLines := 0
	longestLine := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		contentLines++
		if isBulletLine(trimmed) {
			bulletLines++
		}
		if digitPattern.MatchString(trimmed) || strings.Contains(trimmed, "%") {
			quantifiedLines++
		}
		if n := utf8.RuneCountInString(trimmed); n > longestLine {
			longestLine = n
		}
	}
	words := countWords(text)

	score := 0
	suggestions := make([]string, 0, 4)

	// Bullet density
	ratio := 0.0
	if contentLines > 0 {
		ratio = float64(bulletLines) / float64(contentLines)
	}
	switch {
	case ratio >= e.cfg.GoodBulletRatio:
		score += bulletPointsCap
	case ratio >= e.cfg.SomeBulletRatio:
		score += bulletPointsCap * 2 / 3
	case bulletLines > 0:
		score += bulletPointsCap / 3
	default:
		suggestions = append(suggestions, "Use bullet points to list responsibilities and achievements instead of paragraphs")
	}

	// Quantified statements
	switch {
	case quantifiedLines >= 5:
		score += quantifiableCap
	case quantifiedLines >= 2:
		score += quantifiableCap * 3 / 5
	case quantifiedLines >= 1:
		score += quantifiableCap * 2 / 5
	default:
		suggestions = append(suggestions, "Quantify your achievements with numbers and percentages, for example \"reduced build time by 40%\"")
	}

	// Length band
	switch {
	case words >= e.cfg.MinPreferredWords && words <= e.cfg.MaxPreferredWords:
		score += lengthBandCap
	case words < e.cfg.MinPreferredWords:
		suggestions = append(suggestions, "Your resume is on the short side; expand your experience and project descriptions")
	default:
		suggestions = append(suggestions, "Your resume is long; condense it to the most relevant experience")
	}

	// Unbroken blocks
	if longestLine <= e.cfg.MaxUnbrokenRunes {
		score += readableBlocksCap
	} else {
		suggestions = append(suggestions, "Break up long unbroken blocks of text into shorter lines or bullets")
	}

	return types.FormatResult{
		Score:       clamp(score, 0, 100),
		Suggestions: suggestions,
	}
}

func isBulletLine(trimmed string) bool {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(trimmed, m+" ") || trimmed == m {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
