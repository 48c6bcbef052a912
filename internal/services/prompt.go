package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/placement-predictor/internal/report"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildReportSummaryPrompt asks for a short narrative grounded only in the
// computed report figures.
func (pb *PromptBuilder) BuildReportSummaryPrompt(r *report.PlacementReport) string {
	info := r.StudentInfo
	p := r.PlacementPrediction

	modelLine := "not available"
	if m := r.ModelPrediction; m != nil {
		modelLine = fmt.Sprintf("%s, %d%% (%s confidence, source: %s)", m.Label, m.ProbabilityPercent, m.Confidence, m.Source)
	}

	return fmt.Sprintf(`You are a university placement advisor writing a short summary of a student's placement readiness report.

STUDENT:
- Name: %s
- Branch: %s
- CGPA: %.2f
- Technologies: %s
- Projects: %d listed
- Internships: %d listed

REPORT FIGURES:
- Readiness estimate: %d%% (%s confidence)
- Placement model prediction: %s
- Expected salary: %.0f to %.0f INR per annum
- Likely company type: %s
- Expected timeline: %s
- Suggested role: %s

STRENGTHS:
%s

WEAKNESSES:
%s

SKILL GAPS:
%s

Write 3 to 5 sentences in plain prose addressed to the student. Use only the facts above, do not invent numbers, and end with the single most important next step.
Return only the summary text without headings or markdown.`,
		info.Name,
		info.Branch,
		info.CGPA,
		joinOrNone(info.Technologies, ", "),
		len(info.Projects),
		len(info.Internships),
		p.Probability, p.Confidence,
		modelLine,
		p.ExpectedSalary.Min, p.ExpectedSalary.Max,
		p.PlacementCategory,
		p.TimelineEstimate,
		r.CareerPath.PrimaryRole,
		bulletList(r.SkillAnalysis.Strengths),
		bulletList(r.SkillAnalysis.Weaknesses),
		joinOrNone(r.SkillAnalysis.SkillGaps, ", "),
	)
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- none"
	}
	return "- " + strings.Join(items, "\n- ")
}

func joinOrNone(items []string, sep string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, sep)
}
