package assessment

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Result is a graded quiz. A retake replaces the previous result for the
// same skill.
type Result struct {
	SkillID        string    `json:"skill_id"`
	SkillName      string    `json:"skill_name"`
	Category       string    `json:"category"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correct_count"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
	WeakAreas      []string  `json:"weak_areas"`
	Strengths      []string  `json:"strengths"`
}

// Grade scores answers positionally against the skill's questions. Missing
// and negative answers count as wrong.
func (c *Catalog) Grade(skillID string, answers []int, completedAt time.Time) (*Result, error) {
	qs, err := c.Questions(skillID)
	if err != nil {
		return nil, err
	}
	if len(answers) > len(qs) {
		return nil, fmt.Errorf("%w: got %d answers for %d questions", ErrInvalidAnswers, len(answers), len(qs))
	}

	skill := c.skills[skillID]
	weak := newTagSet()
	strong := newTagSet()
	correct := 0
	for i, q := range qs {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
			strong.add(q.Tags...)
			continue
		}
		weak.add(q.Tags...)
	}

	return &Result{
		SkillID:        skillID,
		SkillName:      skill.Name,
		Category:       skill.Category,
		Score:          int(math.Round(float64(correct) / float64(len(qs)) * 100)),
		CorrectCount:   correct,
		TotalQuestions: len(qs),
		CompletedAt:    completedAt,
		WeakAreas:      weak.list(),
		Strengths:      strong.list(),
	}, nil
}

type tagSet struct {
	seen  map[string]bool
	order []string
}

func newTagSet() *tagSet { return &tagSet{seen: make(map[string]bool)} }

func (s *tagSet) add(tags ...string) {
	for _, t := range tags {
		if !s.seen[t] {
			s.seen[t] = true
			s.order = append(s.order, t)
		}
	}
}

func (s *tagSet) list() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}

// Suggestions returns improvement advice for a score band.
func Suggestions(score int) []string {
	switch {
	case score >= 80:
		return []string{
			"Excellent work! Consider mentoring others in this skill.",
			"Look into advanced topics and edge cases.",
			"Contribute to open source projects using this skill.",
		}
	case score >= 60:
		return []string{
			"Good foundation! Focus on practical projects to improve.",
			"Review areas where you lost points.",
			"Practice with real-world scenarios.",
		}
	default:
		return []string{
			"Review the fundamentals of this topic.",
			"Start with beginner-friendly tutorials.",
			"Practice basic concepts before moving to advanced topics.",
			"Consider taking a structured course.",
		}
	}
}

// OverallScore is the rounded mean score, or 0 without results.
func OverallScore(results []Result) int {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, r := range results {
		total += r.Score
	}
	return int(math.Round(float64(total) / float64(len(results))))
}

const (
	recommendationLimit = 5
	passingScore        = 70
)

// Recommend picks the next skills to study: not yet assessed, every
// prerequisite either declared by the student or passed in a quiz, highest
// market value first.
func (c *Catalog) Recommend(technologies []string, results []Result) []Skill {
	declared := make(map[string]bool, len(technologies))
	for _, t := range technologies {
		declared[skillKey(t)] = true
	}
	done := make(map[string]bool, len(results))
	passed := make(map[string]bool, len(results))
	for _, r := range results {
		done[r.SkillID] = true
		if r.Score >= passingScore {
			passed[r.SkillID] = true
		}
	}

	var out []Skill
	for _, s := range c.Skills() {
		if done[s.ID] {
			continue
		}
		ready := true
		for _, pre := range s.Prerequisites {
			if !declared[skillKey(pre)] && !passed[pre] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MarketValue > out[j].MarketValue })
	if len(out) > recommendationLimit {
		out = out[:recommendationLimit]
	}
	return out
}

// skillKey folds "Node.js", "nodejs" and "NodeJS" onto one key.
func skillKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var roleRequirements = map[string][]string{
	"frontend-developer":  {"javascript", "react", "html", "css", "typescript"},
	"backend-developer":   {"python", "nodejs", "databases", "apis"},
	"fullstack-developer": {"javascript", "react", "nodejs", "databases", "aws"},
	"devops-engineer":     {"aws", "docker", "linux", "monitoring"},
}

// Roles lists the roles GapAnalysis understands.
func Roles() []string {
	out := make([]string, 0, len(roleRequirements))
	for r := range roleRequirements {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

type GapAnalysis struct {
	Role       string  `json:"role"`
	Missing    []Skill `json:"missing"`
	Developing []Skill `json:"developing"`
	Strong     []Skill `json:"strong"`
}

// GapAnalysis compares quiz results with a role's catalogued requirements.
// Requirements the catalog has no skill for are ignored.
func (c *Catalog) GapAnalysis(role string, results []Result) (*GapAnalysis, error) {
	reqs, ok := roleRequirements[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	scores := make(map[string]int, len(results))
	for _, r := range results {
		scores[r.SkillID] = r.Score
	}

	gap := &GapAnalysis{Role: role, Missing: []Skill{}, Developing: []Skill{}, Strong: []Skill{}}
	for _, id := range reqs {
		skill, ok := c.skills[id]
		if !ok {
			continue
		}
		score, assessed := scores[id]
		switch {
		case !assessed:
			gap.Missing = append(gap.Missing, skill)
		case score < passingScore:
			gap.Developing = append(gap.Developing, skill)
		default:
			gap.Strong = append(gap.Strong, skill)
		}
	}
	return gap, nil
}
