package analysis

import (
	"math"

	"resumelens/internal/types"
)

// SectionScore is the percentage of canonical sections rated adequate
// or better. Weak sections are present but earn no credit.
func (e *Engine) SectionScore(findings map[types.Section]types.SectionFinding) int {
	credited := 0
	for _, sec := range types.CanonicalSections {
		f := findings[sec]
		if f.Quality == types.QualityAdequate || f.Quality == types.QualityStrong {
			credited++
		}
	}
	score := 100 * float64(credited) / float64(len(types.CanonicalSections))
	return clamp(int(math.Round(score)), 0, 100)
}

// ATSScore blends the three component scores with the configured
// weights and rounds half away from zero to an integer in [0, 100].
func (e *Engine) ATSScore(keywordScore float64, sectionScore, formatScore int) int {
	blended := e.cfg.KeywordWeight*keywordScore +
		e.cfg.SectionWeight*float64(sectionScore) +
		e.cfg.FormatWeight*float64(formatScore)
	return clamp(int(math.Round(blended)), 0, 100)
}
