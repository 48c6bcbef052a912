// Package assessment holds the fixed skill catalog, its question bank and the
// grading and recommendation rules built on top of them.
package assessment

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrSkillNotFound  = errors.New("skill not found")
	ErrNoQuestions    = errors.New("skill has no assessment questions")
	ErrInvalidAnswers = errors.New("invalid answers")
	ErrUnknownRole    = errors.New("unknown role")
)

//go:embed catalog.json
var catalogJSON []byte

type LearningResource struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Duration   string `json:"duration,omitempty"`
	Difficulty string `json:"difficulty"`
}

type Skill struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Difficulty        string             `json:"difficulty"`
	EstimatedMinutes  int                `json:"estimated_minutes"`
	Category          string             `json:"category"`
	MarketValue       int                `json:"market_value"`
	Prerequisites     []string           `json:"prerequisites"`
	LearningResources []LearningResource `json:"learning_resources"`
	QuestionCount     int                `json:"question_count"`
}

type Category struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	MarketDemand int     `json:"market_demand"`
	SalaryImpact int     `json:"salary_impact"`
	Skills       []Skill `json:"skills"`
}

// Question is a multiple choice item. CorrectAnswer indexes Options.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Tags          []string `json:"tags"`
}

// PublicQuestion is a Question without its answer key.
type PublicQuestion struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

func (q Question) Public() PublicQuestion {
	return PublicQuestion{ID: q.ID, Question: q.Question, Options: q.Options, Difficulty: q.Difficulty}
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	categories []Category
	skills     map[string]Skill
	order      []string
	questions  map[string][]Question
}

type catalogDocument struct {
	Categories []Category            `json:"categories"`
	Questions  map[string][]Question `json:"questions"`
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode skill catalog: %w", err)
	}

	c := &Catalog{
		skills:    make(map[string]Skill),
		questions: doc.Questions,
	}
	if c.questions == nil {
		c.questions = make(map[string][]Question)
	}

	for ci, cat := range doc.Categories {
		for si, s := range cat.Skills {
			if _, dup := c.skills[s.ID]; dup {
				return nil, fmt.Errorf("duplicate skill id %q in catalog", s.ID)
			}
			s.QuestionCount = len(c.questions[s.ID])
			doc.Categories[ci].Skills[si] = s
			c.skills[s.ID] = s
			c.order = append(c.order, s.ID)
		}
	}
	c.categories = doc.Categories

	for skillID, qs := range c.questions {
		for _, q := range qs {
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				return nil, fmt.Errorf("question %s of %s has answer index %d out of range", q.ID, skillID, q.CorrectAnswer)
			}
		}
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(catalogJSON)
		if err != nil {
			panic(fmt.Sprintf("bundled skill catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func (c *Catalog) Categories() []Category {
	return c.categories
}

// Skills lists every skill in catalog order.
func (c *Catalog) Skills() []Skill {
	out := make([]Skill, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.skills[id])
	}
	return out
}

func (c *Catalog) Skill(id string) (Skill, bool) {
	s, ok := c.skills[id]
	return s, ok
}

func (c *Catalog) Questions(skillID string) ([]Question, error) {
	if _, ok := c.skills[skillID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, skillID)
	}
	qs := c.questions[skillID]
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, skillID)
	}
	return qs, nil
}
