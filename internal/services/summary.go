package services

import (
	"context"
	"fmt"
	"strings"

	"alfredoptarigan/placement-predictor/internal/report"
)

const summaryTemperature = 0.4

// GeminiSummaryWriter narrates a finished report through Gemini.
type GeminiSummaryWriter struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	maxRetries int
}

func NewGeminiSummaryWriter(gemini GeminiService, maxRetries int) *GeminiSummaryWriter {
	return &GeminiSummaryWriter{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// WriteSummary implements report.SummaryWriter.
func (w *GeminiSummaryWriter) WriteSummary(ctx context.Context, r *report.PlacementReport) (string, error) {
	prompt := w.prompts.BuildReportSummaryPrompt(r)

	text, err := w.gemini.GenerateTextWithRetry(ctx, prompt, summaryTemperature, w.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to generate report summary: %w", err)
	}

	return cleanSummary(text), nil
}

// cleanSummary strips markdown fences and heading markers models sometimes
// add despite the instructions.
func cleanSummary(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}

var _ report.SummaryWriter = (*GeminiSummaryWriter)(nil)
