package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/placement-predictor/internal/prediction"
	"alfredoptarigan/placement-predictor/internal/report"
)

type fakeGemini struct {
	prompt     string
	maxRetries int
	text       string
	err        error
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, t float32, maxRetries int) (string, error) {
	f.maxRetries = maxRetries
	return f.GenerateText(ctx, prompt, t)
}

func sampleReport() *report.PlacementReport {
	return &report.PlacementReport{
		StudentInfo: report.StudentInfo{
			Name:         "Meera",
			Branch:       "IT",
			CGPA:         8.6,
			Technologies: []string{"Go", "React"},
			Projects:     []string{"Chat app"},
		},
		PlacementPrediction: report.PlacementPrediction{
			Probability:       68,
			Confidence:        prediction.ConfidenceMedium,
			ExpectedSalary:    prediction.SalaryRange{Min: 400000, Max: 650000, Average: 500000},
			PlacementCategory: "Startup",
			TimelineEstimate:  "4-6 months",
		},
		SkillAnalysis: report.SkillAnalysis{
			Strengths:  []string{"Excellent CGPA of 8.6 - Top performer"},
			Weaknesses: []string{"No internship experience - Critical gap"},
			SkillGaps:  []string{"AWS", "Docker"},
		},
		CareerPath: report.CareerPath{PrimaryRole: "Software Developer"},
		ModelPrediction: &prediction.PredictionResult{
			Label: prediction.LabelPlaced, ProbabilityPercent: 74,
			Confidence: prediction.ConfidenceMedium, Source: prediction.SourceModel,
		},
	}
}

func TestBuildReportSummaryPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildReportSummaryPrompt(sampleReport())

	assert.Contains(t, prompt, "- Name: Meera")
	assert.Contains(t, prompt, "- CGPA: 8.60")
	assert.Contains(t, prompt, "- Technologies: Go, React")
	assert.Contains(t, prompt, "- Projects: 1 listed")
	assert.Contains(t, prompt, "- Readiness estimate: 68% (Medium confidence)")
	assert.Contains(t, prompt, "Placed, 74% (Medium confidence, source: model)")
	assert.Contains(t, prompt, "400000 to 650000 INR")
	assert.Contains(t, prompt, "- No internship experience - Critical gap")
	assert.Contains(t, prompt, "AWS, Docker")
}

func TestBuildReportSummaryPrompt_Sparse(t *testing.T) {
	prompt := NewPromptBuilder().BuildReportSummaryPrompt(&report.PlacementReport{})

	assert.Contains(t, prompt, "- Technologies: none")
	assert.Contains(t, prompt, "- Placement model prediction: not available")
	assert.Contains(t, prompt, "STRENGTHS:\n- none")
}

func TestGeminiSummaryWriter(t *testing.T) {
	t.Run("cleans model output", func(t *testing.T) {
		g := &fakeGemini{text: "```\n## Summary\nMeera is well placed.\n\nFocus on AWS.\n```"}
		w := NewGeminiSummaryWriter(g, 2)

		got, err := w.WriteSummary(context.Background(), sampleReport())
		require.NoError(t, err)
		assert.Equal(t, "Summary Meera is well placed. Focus on AWS.", got)
		assert.Equal(t, 2, g.maxRetries)
		assert.Contains(t, g.prompt, "Meera")
	})

	t.Run("wraps failures", func(t *testing.T) {
		boom := errors.New("quota")
		w := NewGeminiSummaryWriter(&fakeGemini{err: boom}, 1)

		_, err := w.WriteSummary(context.Background(), sampleReport())
		assert.ErrorIs(t, err, boom)
	})
}
