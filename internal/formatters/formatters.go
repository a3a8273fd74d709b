package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "RoleList", &RoleListTextFormatter{})
	registry.RegisterFormatter("markdown", "RoleList", &RoleListMarkdownFormatter{})
	registry.RegisterFormatter("text", "HistoryList", &HistoryTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

// RoleList is the printable form of one catalog category.
type RoleList struct {
	Category string              `json:"category"`
	Roles    []types.RoleProfile `json:"roles"`
}

// HistoryList is the printable form of recent analyses.
type HistoryList struct {
	Records []types.AnalysisRecord `json:"records"`
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	case RoleList:
		return "RoleList"
	case HistoryList:
		return "HistoryList"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Role: %s (%s)\n", result.Role, result.Category))
	output.WriteString(fmt.Sprintf("ATS Score: %d/100\n\n", result.ATSScore))

	output.WriteString("Component Scores:\n")
	output.WriteString(fmt.Sprintf("  Keyword Match: %.1f/100\n", result.KeywordMatch.Score))
	output.WriteString(fmt.Sprintf("  Sections:      %d/100\n", result.SectionScore))
	output.WriteString(fmt.Sprintf("  Formatting:    %d/100\n\n", result.FormatScore))

	output.WriteString("Sections:\n")
	for _, sec := range types.CanonicalSections {
		f := result.Sections[sec]
		output.WriteString(fmt.Sprintf("  %-15s %s\n", string(sec)+":", f.Quality))
	}
	output.WriteString("\n")

	if len(result.KeywordMatch.MissingSkills) > 0 {
		output.WriteString("Missing Skills:\n")
		for _, skill := range result.KeywordMatch.MissingSkills {
			output.WriteString(fmt.Sprintf("  - %s\n", skill))
		}
		output.WriteString("\n")
	}

	hasSuggestions := false
	for _, cat := range types.SuggestionCategories {
		items := result.Suggestions[cat]
		if len(items) == 0 {
			continue
		}
		if !hasSuggestions {
			output.WriteString("Suggestions:\n")
			hasSuggestions = true
		}
		output.WriteString(fmt.Sprintf("  [%s]\n", cat))
		for _, item := range items {
			output.WriteString(fmt.Sprintf("  - %s\n", item))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Role:** %s (%s)\n\n", result.Role, result.Category))
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.ATSScore))

	output.WriteString("## Component Scores\n\n")
	output.WriteString("| Component | Score |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Keyword Match | %.1f |\n", result.KeywordMatch.Score))
	output.WriteString(fmt.Sprintf("| Sections | %d |\n", result.SectionScore))
	output.WriteString(fmt.Sprintf("| Formatting | %d |\n\n", result.FormatScore))

	output.WriteString("## Sections\n\n")
	for _, sec := range types.CanonicalSections {
		f := result.Sections[sec]
		output.WriteString(fmt.Sprintf("- **%s:** %s\n", sec, f.Quality))
	}
	output.WriteString("\n")

	if len(result.KeywordMatch.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n\n")
		for _, skill := range result.KeywordMatch.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	for _, cat := range types.SuggestionCategories {
		items := result.Suggestions[cat]
		if len(items) == 0 {
			continue
		}
		output.WriteString(fmt.Sprintf("## Suggestions: %s\n\n", cat))
		for _, item := range items {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// RoleListTextFormatter handles text formatting for catalog listings
type RoleListTextFormatter struct{}

func (rtf *RoleListTextFormatter) Format(data any) (string, error) {
	list, ok := data.(RoleList)
	if !ok {
		return "", fmt.Errorf("expected RoleList, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Category: %s\n", list.Category))
	for _, role := range list.Roles {
		output.WriteString(fmt.Sprintf("  %s\n", role.Name))
		if role.Description != "" {
			output.WriteString(fmt.Sprintf("    %s\n", role.Description))
		}
		output.WriteString(fmt.Sprintf("    skills: %s\n", strings.Join(role.RequiredSkills, ", ")))
	}
	return output.String(), nil
}

func (rtf *RoleListTextFormatter) SupportedType() string {
	return "RoleList"
}

// RoleListMarkdownFormatter handles markdown formatting for catalog listings
type RoleListMarkdownFormatter struct{}

func (rmf *RoleListMarkdownFormatter) Format(data any) (string, error) {
	list, ok := data.(RoleList)
	if !ok {
		return "", fmt.Errorf("expected RoleList, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("# %s\n\n", list.Category))
	for _, role := range list.Roles {
		output.WriteString(fmt.Sprintf("## %s\n\n", role.Name))
		if role.Description != "" {
			output.WriteString(role.Description + "\n\n")
		}
		output.WriteString(fmt.Sprintf("Skills: %s\n\n", strings.Join(role.RequiredSkills, ", ")))
	}
	return output.String(), nil
}

func (rmf *RoleListMarkdownFormatter) SupportedType() string {
	return "RoleList"
}

// HistoryTextFormatter handles text formatting for analysis history
type HistoryTextFormatter struct{}

func (htf *HistoryTextFormatter) Format(data any) (string, error) {
	list, ok := data.(HistoryList)
	if !ok {
		return "", fmt.Errorf("expected HistoryList, got %T", data)
	}

	if len(list.Records) == 0 {
		return "No analyses recorded yet.\n", nil
	}

	var output strings.Builder
	for _, rec := range list.Records {
		output.WriteString(fmt.Sprintf("#%d  %s  %s (%s)  ATS %d/100\n",
			rec.ID, rec.CreatedAt, rec.Role, rec.Category, rec.ATSScore))
		if len(rec.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("     missing: %s\n", strings.Join(rec.MissingSkills, ", ")))
		}
	}
	return output.String(), nil
}

func (htf *HistoryTextFormatter) SupportedType() string {
	return "HistoryList"
}

// Global registry instance
var GlobalRegistry = NewFormatterRegistry()
