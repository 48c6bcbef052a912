// Package ats scores resume text the way applicant tracking systems tend to
// read it: keyword coverage, section presence, formatting, length and
// readability.
package ats

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

var ErrEmptyResume = errors.New("resume text is empty")

type Breakdown struct {
	KeywordMatch int `json:"keyword_match"`
	Formatting   int `json:"formatting"`
	Sections     int `json:"sections"`
	Length       int `json:"length"`
	Readability  int `json:"readability"`
}

type Score struct {
	OverallScore      int       `json:"overall_score"`
	Breakdown         Breakdown `json:"breakdown"`
	FoundKeywords     []string  `json:"found_keywords"`
	MissingSections   []string  `json:"missing_sections"`
	Suggestions       []string  `json:"suggestions"`
	Strengths         []string  `json:"strengths"`
	Weaknesses        []string  `json:"weaknesses"`
	IndustryRelevance int       `json:"industry_relevance"`
	WordCount         int       `json:"word_count"`
}

var (
	softwareKeywords = []string{
		"JavaScript", "Python", "Java", "React", "Node.js", "Angular", "Vue.js",
		"HTML", "CSS", "SQL", "MongoDB", "PostgreSQL", "Git", "Docker", "AWS",
		"Azure", "Kubernetes", "DevOps", "API", "REST", "GraphQL", "TypeScript",
		"Spring Boot", "Django", "Flask", "Express.js", "Redux", "Webpack",
	}
	dataScienceKeywords = []string{
		"Machine Learning", "Data Science", "Python", "R", "TensorFlow", "PyTorch",
		"Pandas", "NumPy", "Scikit-learn", "SQL", "Tableau", "Power BI", "Excel",
		"Statistics", "Deep Learning", "NLP", "Computer Vision", "Big Data", "Hadoop",
	}
	generalKeywords = []string{
		"Communication", "Leadership", "Problem Solving", "Team Work", "Project Management",
		"Analytical", "Critical Thinking", "Time Management", "Agile", "Scrum",
	}
)

type section struct {
	name    string
	pattern *regexp.Regexp
}

var requiredSections = []section{
	{"contact", regexp.MustCompile(`contact|address|location`)},
	{"email", regexp.MustCompile(`@[\w.-]+\.\w+`)},
	{"phone", regexp.MustCompile(`\+?\d[\d\s-]{8,}\d`)},
	{"experience", regexp.MustCompile(`experience|work|employment|internship`)},
	{"education", regexp.MustCompile(`education|degree|university|college|school`)},
	{"skills", regexp.MustCompile(`skills|technologies|technical|proficient`)},
	{"projects", regexp.MustCompile(`projects|portfolio|github|built|developed`)},
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

const (
	keywordTarget    = 15
	relevanceTarget  = 10
	idealMinWords    = 200
	idealMaxWords    = 800
	idealWords       = 500
	maxSentenceWords = 25
)

// Analyze scores resume text. The overall score weighs keywords 30%,
// sections 25%, formatting 20%, length 15% and readability 10%.
func Analyze(text string) (*Score, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResume
	}

	lower := strings.ToLower(text)
	words := len(strings.Fields(text))

	found, technical := matchKeywords(lower)
	keywordScore := math.Min(float64(len(found))/keywordTarget*100, 100)

	var missing []string
	for _, s := range requiredSections {
		if !s.pattern.MatchString(lower) {
			missing = append(missing, s.name)
		}
	}
	present := len(requiredSections) - len(missing)
	sectionScore := float64(present) / float64(len(requiredSections)) * 100

	formattingScore := 45.0
	if strings.Contains(text, "\n") && strings.Contains(text, " ") {
		formattingScore = 85
	}

	lengthScore := 90.0
	if words < idealMinWords || words > idealMaxWords {
		lengthScore = math.Max(40, 90-math.Abs(float64(words-idealWords))/10)
	}

	perSentence := float64(words) / float64(sentenceCount(text))
	readabilityScore := 85.0
	if perSentence >= maxSentenceWords {
		readabilityScore = math.Max(50, 85-(perSentence-maxSentenceWords)*2)
	}

	b := Breakdown{
		KeywordMatch: round(keywordScore),
		Formatting:   round(formattingScore),
		Sections:     round(sectionScore),
		Length:       round(lengthScore),
		Readability:  round(readabilityScore),
	}

	s := &Score{
		OverallScore: round(float64(b.KeywordMatch)*0.3 +
			float64(b.Sections)*0.25 +
			float64(b.Formatting)*0.2 +
			float64(b.Length)*0.15 +
			float64(b.Readability)*0.1),
		Breakdown:         b,
		FoundKeywords:     found,
		MissingSections:   nonNil(missing),
		Suggestions:       []string{},
		Strengths:         []string{},
		Weaknesses:        []string{},
		IndustryRelevance: int(math.Min(float64(round(float64(technical)/relevanceTarget*100)), 100)),
		WordCount:         words,
	}
	s.judge(words)
	return s, nil
}

func (s *Score) judge(words int) {
	b := s.Breakdown
	if b.KeywordMatch < 60 {
		s.Suggestions = append(s.Suggestions, "Add more relevant technical keywords and skills")
		s.Weaknesses = append(s.Weaknesses, "Limited keyword optimization")
	} else {
		s.Strengths = append(s.Strengths, "Good keyword usage")
	}

	if b.Sections < 70 {
		s.Suggestions = append(s.Suggestions, "Include all essential sections: Contact, Experience, Education, Skills, Projects")
		s.Weaknesses = append(s.Weaknesses, "Missing important resume sections")
	} else {
		s.Strengths = append(s.Strengths, "Well-structured with key sections")
	}

	if b.Length < 60 {
		if words < idealMinWords {
			s.Suggestions = append(s.Suggestions, "Expand your resume with more details")
		} else {
			s.Suggestions = append(s.Suggestions, "Make your resume more concise")
		}
		s.Weaknesses = append(s.Weaknesses, "Resume length needs optimization")
	} else {
		s.Strengths = append(s.Strengths, "Appropriate resume length")
	}

	if b.Formatting < 70 {
		s.Suggestions = append(s.Suggestions, "Improve formatting and structure for better ATS readability")
		s.Weaknesses = append(s.Weaknesses, "Formatting could be improved")
	} else {
		s.Strengths = append(s.Strengths, "Good formatting structure")
	}
}

// matchKeywords returns each distinct keyword found, in list order, and how
// many of them are technical. Keywords of two characters or fewer must stand
// alone as a word.
func matchKeywords(lower string) (found []string, technical int) {
	seen := make(map[string]bool)
	check := func(list []string, isTechnical bool) {
		for _, kw := range list {
			key := strings.ToLower(kw)
			if seen[key] || !containsKeyword(lower, key) {
				continue
			}
			seen[key] = true
			found = append(found, kw)
			if isTechnical {
				technical++
			}
		}
	}
	check(softwareKeywords, true)
	check(dataScienceKeywords, true)
	check(generalKeywords, false)
	return nonNil(found), technical
}

func containsKeyword(text, kw string) bool {
	if len(kw) > 2 {
		return strings.Contains(text, kw)
	}
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if w == kw {
			return true
		}
	}
	return false
}

func sentenceCount(text string) int {
	n := 0
	for _, part := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

func round(v float64) int { return int(math.Round(v)) }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
