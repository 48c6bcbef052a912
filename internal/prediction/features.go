package prediction

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// ErrFeatureShape is returned by a strict extractor when the assembled vector
// does not match the model's declared feature count.
var ErrFeatureShape = errors.New("feature vector shape mismatch")

// FeatureVector is the ordered input of the linear model.
type FeatureVector []float64

// SkillMatcher scores how strongly a declared skill supports a vocabulary
// term. Both arguments are lower-cased and trimmed.
type SkillMatcher interface {
	Weight(skill, term string) float64
}

// SubstringMatcher is the bidirectional substring heuristic: an exact match
// weighs 2, a skill containing the term weighs 1, and a term containing a
// skill longer than two characters weighs 1.
type SubstringMatcher struct{}

func (SubstringMatcher) Weight(skill, term string) float64 {
	switch {
	case skill == "" || term == "":
		return 0
	case skill == term:
		return 2
	case strings.Contains(skill, term):
		return 1
	case utf8.RuneCountInString(skill) > 2 && strings.Contains(term, skill):
		return 1
	}
	return 0
}

// ExactMatcher only counts identical terms.
type ExactMatcher struct{}

func (ExactMatcher) Weight(skill, term string) float64 {
	if skill != "" && skill == term {
		return 2
	}
	return 0
}

// FeatureExtractor assembles model inputs from a profile.
type FeatureExtractor struct {
	matcher SkillMatcher
	strict  bool
}

type ExtractorOption func(*FeatureExtractor)

// WithSkillMatcher swaps the skill matching heuristic.
func WithSkillMatcher(m SkillMatcher) ExtractorOption {
	return func(e *FeatureExtractor) { e.matcher = m }
}

// WithStrictShape makes Extract fail instead of padding or truncating.
func WithStrictShape(strict bool) ExtractorOption {
	return func(e *FeatureExtractor) { e.strict = strict }
}

func NewFeatureExtractor(opts ...ExtractorOption) *FeatureExtractor {
	e := &FeatureExtractor{matcher: SubstringMatcher{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds the feature vector in the model's training order: base
// fields, branch index, derived features, skills TF-IDF, then zero padding
// up to the declared feature count.
func (e *FeatureExtractor) Extract(p StudentProfile, m *ModelParameters) (FeatureVector, error) {
	if m == nil {
		return nil, ErrModelUnavailable
	}

	cgpa := p.CGPA
	workExp := float64(p.WorkExpYears)
	internships := float64(p.InternshipCount)
	projects := float64(p.ProjectCount)
	resume := p.ResumeScore()
	soft := p.SoftSkills()

	features := make(FeatureVector, 0, m.FeatureCount())
	features = append(features, cgpa, workExp, internships, projects, resume, soft)

	branchIdx, _ := m.BranchIndex(p.Branch)
	features = append(features, float64(branchIdx))

	isCS := 0.0
	if IsCSBranch(p.Branch) {
		isCS = 1
	}
	features = append(features,
		cgpa*cgpa,
		workExp+internships*0.5,
		projects/(workExp+1),
		resume/(soft+1),
		(cgpa*0.4+resume*0.3+soft*0.3)/100,
		isCS,
	)

	features = append(features, e.skillsTFIDF(p.Skills, m)...)

	want := m.FeatureCount()
	if len(features) != want {
		if e.strict {
			return nil, fmt.Errorf("%w: built %d features, model expects %d", ErrFeatureShape, len(features), want)
		}
		log.Printf("⚠️ Feature shape mismatch: built %d, model expects %d; reshaping", len(features), want)
		features = reshape(features, want)
	}

	return features, nil
}

func (e *FeatureExtractor) skillsTFIDF(skills []string, m *ModelParameters) []float64 {
	vec := make([]float64, m.VocabularySize())
	if len(skills) == 0 {
		return vec
	}

	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(s)))
	}

	total := float64(len(skills))
	for term, idx := range m.SkillsVocabulary {
		if idx < 0 || idx >= len(vec) {
			continue
		}
		var count float64
		for _, s := range normalized {
			count += e.matcher.Weight(s, term)
		}
		if count == 0 {
			continue
		}

		idf := 1.0
		if idx < len(m.SkillsIDF) && m.SkillsIDF[idx] != 0 {
			idf = m.SkillsIDF[idx]
		}
		vec[idx] = count / total * idf
	}
	return vec
}

func reshape(v FeatureVector, n int) FeatureVector {
	if len(v) >= n {
		return v[:n]
	}
	out := make(FeatureVector, n)
	copy(out, v)
	return out
}
