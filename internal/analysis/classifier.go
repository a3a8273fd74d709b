package analysis

import (
	"strings"

	"resumelens/internal/types"
)

// indicatorWords are the vocabulary cues a resume is expected to carry.
// Classification counts distinct hits, so repeating one word does not help.
var indicatorWords = []string{
	"education",
	"experience",
	"skills",
	"projects",
	"profile",
	"certifications",
	"achievements",
	"summary",
	"contact",
	"objective",
}

// Classify decides whether text reads like a resume. A document
// qualifies only when it carries at least MinIndicatorHits distinct
// indicator words and its word count exceeds MinResumeWords; short
// documents never qualify no matter how many indicators they contain.
func (e *Engine) Classify(text string) (types.DocumentType, int) {
	words := countWords(text)
	lowered := strings.ToLower(text)

	hits := 0
	for _, w := range indicatorWords {
		if strings.Contains(lowered, w) {
			hits++
		}
	}

	if hits >= e.cfg.MinIndicatorHits && words > e.cfg.MinResumeWords {
		return types.DocumentTypeResume, words
	}
	return types.DocumentTypeOther, words
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
