// Package analysis implements the deterministic resume scoring engine.
// Every function is a pure transformation of its inputs; the engine
// holds only configuration, so one instance is safe for concurrent use.
package analysis

import (
	"strings"

	apperrors "resumelens/internal/errors"
	"resumelens/internal/types"
)

// Engine runs the full analysis pipeline. Construct it once with
// NewEngine and reuse it; it carries no per-analysis state.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine using cfg, with zero values in cfg
// replaced by the defaults.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.normalize()}
}

// Analyze runs the whole pipeline for one resume against one role
// profile. Identical inputs always produce identical results. Input
// that is empty or does not classify as a resume returns a typed
// error; the partial result still reports what was determined.
func (e *Engine) Analyze(text string, profile types.RoleProfile) (types.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return types.AnalysisResult{DocumentType: types.DocumentTypeOther},
			apperrors.NewValidationError(apperrors.ErrCodeEmptyInput, "document contains no text", nil)
	}

	docType, words := e.Classify(text)
	if docType != types.DocumentTypeResume {
		result := types.AnalysisResult{
			DocumentType: docType,
			WordCount:    words,
		}
		return result, apperrors.NewAnalysisError(apperrors.ErrCodeNotAResume,
			"document does not look like a resume", nil).
			WithContext("wordCount", words)
	}

	sections := e.DetectSections(text)
	keywords := e.MatchKeywords(text, profile.RequiredSkills)
	format := e.AnalyzeFormat(text)

	sectionScore := e.SectionScore(sections)
	atsScore := e.ATSScore(keywords.Score, sectionScore, format.Score)
	suggestions := e.Suggest(sections, keywords.MissingSkills, format)

	return types.AnalysisResult{
		DocumentType: types.DocumentTypeResume,
		ATSScore:     atsScore,
		SectionScore: sectionScore,
		FormatScore:  format.Score,
		KeywordMatch: keywords,
		Sections:     sections,
		Suggestions:  suggestions,
		Role:         profile.Name,
		Category:     profile.Category,
		WordCount:    words,
	}, nil
}
