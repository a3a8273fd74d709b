package analysis

import (
	"math"
	"regexp"
	"strings"

	"resumelens/internal/types"
)

// skillChars are the runes that can belong to a skill token. Treating
// '+' and '#' as word characters keeps "c++" and "c#" matchable while
// still rejecting "java" inside "javascript".
const skillChars = `a-z0-9+#`

// MatchKeywords checks each required skill against the resume text
// with token-boundary matching. An empty requirement list scores 100:
// nothing was asked for, so nothing is missing. MissingSkills keeps
// the profile's declared order.
func (e *Engine) MatchKeywords(text string, required []string) types.KeywordMatchResult {
	if len(required) == 0 {
		return types.KeywordMatchResult{
			Score:         100,
			MatchedSkills: []string{},
			MissingSkills: []string{},
		}
	}

	lowered := strings.ToLower(text)
	matched := make([]string, 0, len(required))
	missing := make([]string, 0)

	for _, skill := range required {
		if containsToken(lowered, strings.ToLower(strings.TrimSpace(skill))) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	score := 100 * float64(len(matched)) / float64(len(required))
	return types.KeywordMatchResult{
		Score:         roundTo1(score),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// containsToken reports whether skill occurs in lowered text bounded
// by non-skill characters (or the ends of the text) on both sides.
func containsToken(lowered, skill string) bool {
	if skill == "" {
		return false
	}
	pattern := `(^|[^` + skillChars + `])` + regexp.QuoteMeta(skill) + `($|[^` + skillChars + `])`
	re, err := regexp.Compile(pattern)
	if err != nil {
		// QuoteMeta makes this unreachable for sane skill names.
		return strings.Contains(lowered, skill)
	}
	return re.MatchString(lowered)
}

// roundTo1 rounds to one decimal place, so 2 of 3 skills comes out as
// 66.7 rather than a long binary fraction.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
