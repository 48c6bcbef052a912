// Package report builds the rule-based placement report: strengths and
// weaknesses, skill gaps, career path, action plan and market context.
package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/placement-predictor/internal/assessment"
)

const (
	SummarySourceTemplate = "template"
	SummarySourceLLM      = "llm"
)

// SummaryWriter produces a narrative summary for a finished report.
type SummaryWriter interface {
	WriteSummary(ctx context.Context, r *PlacementReport) (string, error)
}

type Generator struct {
	catalog *assessment.Catalog
	summary SummaryWriter
	now     func() time.Time
}

// NewGenerator builds a generator. catalog defaults to the bundled catalog;
// summary may be nil, in which case the template summary is used.
func NewGenerator(catalog *assessment.Catalog, summary SummaryWriter) *Generator {
	if catalog == nil {
		catalog = assessment.DefaultCatalog()
	}
	return &Generator{catalog: catalog, summary: summary, now: time.Now}
}

// Generate builds a report. It only fails when ctx is already done.
func (g *Generator) Generate(ctx context.Context, in Input) (*PlacementReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info := in.Student
	c := countsFor(info)

	probability, confidence := EstimateProbability(info)

	strengths, weaknesses, profileRecs := profileFindings(info, c)
	completed := countCompleted(in.Assessments)
	total := len(g.catalog.Skills())
	strengths = append(strengths, technologyStrengths(info.Technologies, completed, total)...)
	weaknesses = append(weaknesses, assessmentWeaknesses(g.catalog, in.Assessments)...)

	analysis := SkillAnalysis{
		Strengths:          nonNil(strengths),
		Weaknesses:         nonNil(weaknesses),
		CompletedSkills:    completed,
		TotalSkills:        total,
		SkillGaps:          nonNil(SkillGaps(info.Technologies)),
		MarketDemandScore:  marketDemandScore(info.Technologies),
		TechnicalReadiness: technicalReadiness(completed, total),
	}

	r := &PlacementReport{
		ID:          uuid.New().String(),
		GeneratedAt: g.now(),
		StudentInfo: info,
		PlacementPrediction: PlacementPrediction{
			Probability:       probability,
			Confidence:        confidence,
			ExpectedSalary:    salaryRange(info, c),
			PlacementCategory: placementCategory(info.Technologies, probability),
			TimelineEstimate:  timelineEstimate(probability),
		},
		SkillAnalysis:   analysis,
		MarketInsights:  marketInsights(info.Technologies),
		Recommendations: recommendations(info, analysis, nonNil(profileRecs)),
		CareerPath:      SuggestCareerPath(info.Technologies, c.workYears),
		ActionPlan:      buildActionPlan(analysis, c),
		ModelPrediction: in.Prediction,
	}

	r.Summary, r.SummarySource = g.writeSummary(ctx, r)
	return r, nil
}

func (g *Generator) writeSummary(ctx context.Context, r *PlacementReport) (string, string) {
	if g.summary != nil {
		text, err := g.summary.WriteSummary(ctx, r)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), SummarySourceLLM
		}
		if err != nil {
			log.Printf("⚠️ Summary writer failed, using template: %v", err)
		}
	}
	return TemplateSummary(r), SummarySourceTemplate
}

// TemplateSummary renders the deterministic narrative used when no summary
// writer is configured or it fails.
func TemplateSummary(r *PlacementReport) string {
	name := r.StudentInfo.Name
	if name == "" {
		name = "The student"
	}
	p := r.PlacementPrediction

	var b strings.Builder
	fmt.Fprintf(&b, "%s has an estimated %d%% placement probability (%s confidence), ", name, p.Probability, p.Confidence)
	fmt.Fprintf(&b, "best suited to %s companies with an expected timeline of %s. ", p.PlacementCategory, p.TimelineEstimate)
	fmt.Fprintf(&b, "Suggested primary role: %s.", r.CareerPath.PrimaryRole)
	if len(r.SkillAnalysis.Strengths) > 0 {
		fmt.Fprintf(&b, " Key strength: %s.", r.SkillAnalysis.Strengths[0])
	}
	if len(r.SkillAnalysis.Weaknesses) > 0 {
		fmt.Fprintf(&b, " Main area to improve: %s.", r.SkillAnalysis.Weaknesses[0])
	}
	if m := r.ModelPrediction; m != nil {
		fmt.Fprintf(&b, " The placement model predicts %s at %d%%.", m.Label, m.ProbabilityPercent)
	}
	return b.String()
}

func countCompleted(results []assessment.Result) int {
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.SkillID] = true
	}
	return len(seen)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
