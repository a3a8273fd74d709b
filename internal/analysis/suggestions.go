package analysis

import (
	"fmt"

	"resumelens/internal/types"
)

// sectionAdvice holds the templated suggestion pair for one canonical
// section along with the category it is reported under. Sections that
// do not have their own category fold into experience, since they all
// describe what the candidate has done.
type sectionAdvice struct {
	category types.SuggestionCategory
	missing  string
	weak     string
}

var adviceBySection = map[types.Section]sectionAdvice{
	types.SectionContact: {
		category: types.CategoryContact,
		missing:  "Add a contact section with your email address and phone number",
		weak:     "Expand your contact details; include an email address, phone number and location",
	},
	types.SectionSummary: {
		category: types.CategorySummary,
		missing:  "Add a professional summary near the top describing who you are and what you are looking for",
		weak:     "Expand your summary into two or three sentences highlighting your strongest qualifications",
	},
	types.SectionSkills: {
		category: types.CategorySkills,
		missing:  "Add a dedicated skills section listing your technical skills",
		weak:     "Expand your skills section; group related technologies and list the ones you use most",
	},
	types.SectionExperience: {
		category: types.CategoryExperience,
		missing:  "Add a work experience section with your roles, employers and dates",
		weak:     "Expand your experience entries with concrete responsibilities and outcomes",
	},
	types.SectionEducation: {
		category: types.CategoryExperience,
		missing:  "Add an education section with your degrees and institutions",
		weak:     "Expand your education section with degree names, institutions and graduation dates",
	},
	types.SectionProjects: {
		category: types.CategoryExperience,
		missing:  "Add a projects section showcasing work that demonstrates your skills",
		weak:     "Expand your project descriptions; state what you built and which technologies you used",
	},
	types.SectionCertifications: {
		category: types.CategoryExperience,
		missing:  "List relevant certifications if you hold any",
		weak:     "Name the issuing body and date for each certification",
	},
	types.SectionAchievements: {
		category: types.CategoryExperience,
		missing:  "Add an achievements section highlighting awards and recognitions",
		weak:     "Make achievements specific; name the award, the year and why it was given",
	},
}

// Suggest builds the per-category improvement lists from the section
// findings, the missing skills and the format analysis. Output order
// is fixed: sections in canonical order, then one line per missing
// skill in profile order, then the format suggestions as produced.
func (e *Engine) Suggest(
	findings map[types.Section]types.SectionFinding,
	missingSkills []string,
	format types.FormatResult,
) map[types.SuggestionCategory][]string {
	out := make(map[types.SuggestionCategory][]string)

	for _, sec := range types.CanonicalSections {
		advice, ok := adviceBySection[sec]
		if !ok {
			continue
		}
		f := findings[sec]
		switch {
		case !f.Present || f.Quality == types.QualityMissing:
			out[advice.category] = append(out[advice.category], advice.missing)
		case f.Quality == types.QualityWeak:
			out[advice.category] = append(out[advice.category], advice.weak)
		}
	}

	for _, skill := range missingSkills {
		out[types.CategorySkills] = append(out[types.CategorySkills],
			fmt.Sprintf("Add %q to your skills section if you have hands-on experience with it", skill))
	}

	if len(format.Suggestions) > 0 {
		out[types.CategoryFormat] = append(out[types.CategoryFormat], format.Suggestions...)
	}

	return out
}
