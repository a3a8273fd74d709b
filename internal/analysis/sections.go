package analysis

import (
	"regexp"
	"strings"

	"resumelens/internal/types"
)

// headingVariants maps each canonical section to the heading spellings
// commonly seen in resumes. Matching is case-insensitive and anchored
// to the start of a short line, so "experience" inside a sentence does
// not open a section.
var headingVariants = map[types.Section][]string{
	types.SectionContact:        {"contact", "contact information", "contact details", "personal details"},
	types.SectionSummary:        {"summary", "professional summary", "profile", "objective", "about me", "career objective"},
	types.SectionEducation:      {"education", "academic background", "academics", "qualifications"},
	types.SectionExperience:     {"experience", "work experience", "professional experience", "work history", "employment", "employment history"},
	types.SectionSkills:         {"skills", "technical skills", "core competencies", "technologies", "key skills"},
	types.SectionProjects:       {"projects", "personal projects", "selected projects", "portfolio"},
	types.SectionCertifications: {"certifications", "certificates", "licenses", "licenses and certifications"},
	types.SectionAchievements:   {"achievements", "accomplishments", "awards", "honors"},
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d[\d\s\-().]{7,}\d)`)
	digitPattern = regexp.MustCompile(`\d`)
)

// sectionSpan is the text between a detected heading and the next one.
type sectionSpan struct {
	section types.Section
	lines   []string
}

// DetectSections locates the eight canonical sections and rates each
// span. The result always contains an entry for every canonical
// section, so callers never need a presence check before indexing.
func (e *Engine) DetectSections(text string) map[types.Section]types.SectionFinding {
	findings := make(map[types.Section]types.SectionFinding, len(types.CanonicalSections))
	for _, s := range types.CanonicalSections {
		findings[s] = types.SectionFinding{Present: false, Quality: types.QualityMissing}
	}

	lines := strings.Split(text, "\n")
	spans := splitSpans(lines)

	for _, span := range spans {
		quality := e.rateSpan(span.lines)
		prev, ok := findings[span.section]
		// A section split across the document keeps its best rating.
		if !ok || !prev.Present || qualityRank(quality) > qualityRank(prev.Quality) {
			findings[span.section] = types.SectionFinding{Present: true, Quality: quality}
		}
	}

	// Contact details frequently appear as a header line without any
	// heading at all. An email or phone number counts as presence.
	if f := findings[types.SectionContact]; !f.Present {
		if emailPattern.MatchString(text) || phonePattern.MatchString(text) {
			findings[types.SectionContact] = types.SectionFinding{Present: true, Quality: types.QualityAdequate}
		}
	}

	return findings
}

// splitSpans walks the lines once, opening a new span at every heading
// line and accumulating body lines into the currently open span.
func splitSpans(lines []string) []sectionSpan {
	var spans []sectionSpan
	current := -1

	for _, line := range lines {
		if sec, ok := matchHeading(line); ok {
			spans = append(spans, sectionSpan{section: sec})
			current = len(spans) - 1
			continue
		}
		if current >= 0 {
			spans[current].lines = append(spans[current].lines, line)
		}
	}
	return spans
}

// matchHeading reports whether a line is a section heading. Heading
// lines are short, start with a known variant, and carry at most a
// trailing colon or decoration after it.
func matchHeading(line string) (types.Section, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 48 {
		return "", false
	}
	lowered := strings.ToLower(strings.TrimRight(trimmed, ":-= \t"))

	for _, sec := range types.CanonicalSections {
		for _, variant := range headingVariants[sec] {
			if lowered == variant {
				return sec, true
			}
		}
	}
	return "", false
}

// rateSpan grades the body of a detected section. Empty or very short
// spans are weak; substantial spans with visible structure (bullets or
// quantified lines) are strong; everything in between is adequate.
func (e *Engine) rateSpan(lines []string) types.SectionQuality {
	tokens := 0
	signals := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		tokens += len(strings.Fields(trimmed))
		if isBulletLine(trimmed) || digitPattern.MatchString(trimmed) {
			signals++
		}
	}

	switch {
	case tokens < e.cfg.WeakSpanTokens:
		return types.QualityWeak
	case tokens >= e.cfg.StrongSpanTokens && signals >= e.cfg.StrongSignals:
		return types.QualityStrong
	default:
		return types.QualityAdequate
	}
}

func qualityRank(q types.SectionQuality) int {
	switch q {
	case types.QualityWeak:
		return 1
	case types.QualityAdequate:
		return 2
	case types.QualityStrong:
		return 3
	default:
		return 0
	}
}
