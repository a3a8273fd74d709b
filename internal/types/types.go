package types

// DocumentType classifies the kind of document the engine was given
type DocumentType string

const (
	DocumentTypeResume DocumentType = "resume"
	DocumentTypeReport DocumentType = "report"
	DocumentTypeOther  DocumentType = "other"
)

// Section names the canonical resume sections the engine looks for
type Section string

const (
	SectionContact        Section = "contact"
	SectionSummary        Section = "summary"
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionAchievements   Section = "achievements"
)

// CanonicalSections is the fixed, ordered set of sections the engine scores.
// The order is the display order for findings and suggestions.
var CanonicalSections = []Section{
	SectionContact,
	SectionSummary,
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionAchievements,
}

// SectionQuality rates a detected section span
type SectionQuality string

const (
	QualityMissing  SectionQuality = "missing"
	QualityWeak     SectionQuality = "weak"
	QualityAdequate SectionQuality = "adequate"
	QualityStrong   SectionQuality = "strong"
)

// SectionFinding is the per-section presence/quality judgment
type SectionFinding struct {
	Present bool           `json:"present"`
	Quality SectionQuality `json:"quality"`
}

// RoleProfile is the target job role used as the comparison baseline.
// Profiles are loaded from the static catalog and never mutated.
type RoleProfile struct {
	Category       string   `json:"category"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
}

// KeywordMatchResult is the overlap between role-required skills and
// skills detected in the document text
type KeywordMatchResult struct {
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matchedSkills"`
	// MissingSkills preserves the role profile's required-skill order
	// so suggestion output is stable for identical inputs.
	MissingSkills []string `json:"missingSkills"`
}

// FormatResult holds the structural hygiene assessment
type FormatResult struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// SuggestionCategory groups improvement suggestions for display
type SuggestionCategory string

const (
	CategoryContact    SuggestionCategory = "contact"
	CategorySummary    SuggestionCategory = "summary"
	CategorySkills     SuggestionCategory = "skills"
	CategoryExperience SuggestionCategory = "experience"
	CategoryFormat     SuggestionCategory = "format"
)

// SuggestionCategories is the display order for suggestion groups.
var SuggestionCategories = []SuggestionCategory{
	CategoryContact,
	CategorySummary,
	CategorySkills,
	CategoryExperience,
	CategoryFormat,
}

// AnalysisResult is the terminal aggregate returned by the engine.
// Score fields are only meaningful when DocumentType is resume; failed
// analyses are signalled through a typed error instead of result fields.
type AnalysisResult struct {
	DocumentType DocumentType                    `json:"documentType"`
	ATSScore     int                             `json:"atsScore"`
	SectionScore int                             `json:"sectionScore"`
	FormatScore  int                             `json:"formatScore"`
	KeywordMatch KeywordMatchResult              `json:"keywordMatch"`
	Sections     map[Section]SectionFinding      `json:"sections"`
	Suggestions  map[SuggestionCategory][]string `json:"suggestions"`
	Role         string                          `json:"role"`
	Category     string                          `json:"category"`
	WordCount    int                             `json:"wordCount"`
}

// AnalysisRecord is the persisted form of an analysis, the exact fields
// the storage boundary keeps for history and statistics.
type AnalysisRecord struct {
	ID            int64    `json:"id"`
	Role          string   `json:"role"`
	Category      string   `json:"category"`
	ATSScore      int      `json:"atsScore"`
	KeywordScore  float64  `json:"keywordScore"`
	FormatScore   int      `json:"formatScore"`
	SectionScore  int      `json:"sectionScore"`
	MissingSkills []string `json:"missingSkills"`
	Suggestions   []string `json:"suggestions"`
	CreatedAt     string   `json:"createdAt"`
}

// StoreStats is the aggregate view over persisted analyses
type StoreStats struct {
	TotalAnalyses   int64            `json:"totalAnalyses"`
	AverageATSScore float64          `json:"averageAtsScore"`
	HighScoring     int64            `json:"highScoring"`
	ByCategory      map[string]int64 `json:"byCategory"`
}
