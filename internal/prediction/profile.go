// Package prediction turns student profiles into placement probabilities.
//
// It holds the feature extractor, the linear model predictor and the
// statistical fallback that runs over the bundled historical dataset.
package prediction

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultSoftSkills     = 75
	resumeScoreUploaded   = 85
	resumeScoreNotPresent = 70
)

// StudentProfile is the normalised input of every scoring function.
type StudentProfile struct {
	CGPA             float64  `json:"cgpa"`
	Branch           string   `json:"branch"`
	WorkExpYears     int      `json:"work_exp_years"`
	InternshipCount  int      `json:"internship_count"`
	ProjectCount     int      `json:"project_count"`
	Skills           []string `json:"skills"`
	ResumeUploaded   bool     `json:"resume_uploaded"`
	SoftSkillsRating *int     `json:"soft_skills_rating,omitempty"`
}

// RawProfile is the free-text shape a student fills in on the profile form.
type RawProfile struct {
	CGPA           float64
	Branch         string
	Experience     string
	Internships    []string
	Projects       []string
	Technologies   []string
	ResumeUploaded bool
	SoftSkills     *int
}

// NewStudentProfile derives a StudentProfile from raw form data. Counts are
// taken from CountValidItems and work experience from ParseExperienceYears;
// nothing here fails, missing values fall back to defaults.
func NewStudentProfile(raw RawProfile) StudentProfile {
	return StudentProfile{
		CGPA:             clampCGPA(raw.CGPA),
		Branch:           strings.TrimSpace(raw.Branch),
		WorkExpYears:     ParseExperienceYears(raw.Experience),
		InternshipCount:  CountValidItems(raw.Internships),
		ProjectCount:     CountValidItems(raw.Projects),
		Skills:           cleanSkills(raw.Technologies),
		ResumeUploaded:   raw.ResumeUploaded,
		SoftSkillsRating: raw.SoftSkills,
	}
}

// ResumeScore is the proxy used in place of a real resume score.
func (p StudentProfile) ResumeScore() float64 {
	if p.ResumeUploaded {
		return resumeScoreUploaded
	}
	return resumeScoreNotPresent
}

// SoftSkills returns the rating or the default when none was given.
func (p StudentProfile) SoftSkills() float64 {
	if p.SoftSkillsRating == nil || *p.SoftSkillsRating <= 0 {
		return defaultSoftSkills
	}
	return float64(*p.SoftSkillsRating)
}

func clampCGPA(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func cleanSkills(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// Placeholder answers students type instead of leaving a list empty. Short
// tokens only match the whole entry; phrases also match inside longer text.
var (
	placeholderTokens = []string{
		"no", "na", "n/a", "nil", "none", "zero", "0", "nothing", "not any",
	}
	placeholderPhrases = []string{
		"not applicable", "no internships", "no internship", "no projects", "no project",
		"not done", "haven't done", "didn't do", "not completed", "not available",
		"not yet", "not started",
	}
)

// CountValidItems counts the entries of a free-text list that are neither
// empty nor a negative placeholder such as "none" or "no internships".
func CountValidItems(items []string) int {
	count := 0
	for _, item := range items {
		if isValidItem(item) {
			count++
		}
	}
	return count
}

func isValidItem(item string) bool {
	lower := strings.ToLower(strings.TrimSpace(item))
	if lower == "" {
		return false
	}
	for _, token := range placeholderTokens {
		if lower == token {
			return false
		}
	}
	padded := " " + lower + " "
	for _, phrase := range placeholderPhrases {
		if strings.Contains(padded, " "+phrase) {
			return false
		}
	}
	return true
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)experience:\s*(\d+)`),
	regexp.MustCompile(`(?i)worked\s*(?:for)?\s*(\d+)`),
}

var experienceKeywords = []string{"worked", "employee", "job", "company", "position", "role", "intern"}

// ParseExperienceYears pulls a year count out of a free-text experience
// description. A long description with job vocabulary but no number counts
// as one year.
func ParseExperienceYears(text string) int {
	for _, re := range experiencePatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if years, err := strconv.Atoi(m[1]); err == nil {
			return years
		}
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 50 {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range experienceKeywords {
		if strings.Contains(lower, kw) {
			return 1
		}
	}
	return 0
}
