package ats

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_SampleResume(t *testing.T) {
	text, err := os.ReadFile("testdata/resume.txt")
	require.NoError(t, err)

	s, err := Analyze(string(text))
	require.NoError(t, err)

	assert.Equal(t, Breakdown{
		KeywordMatch: 100,
		Formatting:   85,
		Sections:     86,
		Length:       48,
		Readability:  85,
	}, s.Breakdown)
	assert.Equal(t, 84, s.OverallScore)
	assert.Equal(t, 77, s.WordCount)
	assert.Equal(t, 100, s.IndustryRelevance)
	assert.Equal(t, []string{"contact"}, s.MissingSections)
	assert.Contains(t, s.FoundKeywords, "Agile")
	assert.Contains(t, s.FoundKeywords, "Machine Learning")
	assert.NotContains(t, s.FoundKeywords, "R")

	assert.Equal(t, []string{"Good keyword usage", "Well-structured with key sections", "Good formatting structure"}, s.Strengths)
	assert.Equal(t, []string{"Resume length needs optimization"}, s.Weaknesses)
	assert.Equal(t, []string{"Expand your resume with more details"}, s.Suggestions)
}

func TestAnalyze_SingleLine(t *testing.T) {
	s, err := Analyze("Python developer")
	require.NoError(t, err)

	assert.Equal(t, 7, s.Breakdown.KeywordMatch)
	assert.Equal(t, 45, s.Breakdown.Formatting)
	assert.Equal(t, 0, s.Breakdown.Sections)
	assert.Equal(t, 40, s.Breakdown.Length)
	assert.Equal(t, 26, s.OverallScore)
	assert.Empty(t, s.Strengths)
	assert.Len(t, s.Weaknesses, 4)
	assert.Len(t, s.MissingSections, 7)
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze("  \n\t ")
	assert.ErrorIs(t, err, ErrEmptyResume)
}

func TestAnalyze_Bounds(t *testing.T) {
	inputs := []string{"a", "word. word! word?", "x\ny z", "...", "contact me at a@b.io or +91 98765 43210"}
	for _, in := range inputs {
		s, err := Analyze(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.OverallScore, 0, in)
		assert.LessOrEqual(t, s.OverallScore, 100, in)
		assert.LessOrEqual(t, s.IndustryRelevance, 100, in)
	}
}

func TestContainsKeyword(t *testing.T) {
	tests := []struct {
		text string
		kw   string
		want bool
	}{
		{"statistics in r and sql", "r", true},
		{"built with react", "r", false},
		{"node.js services", "node.js", true},
		{"rest apis", "api", true},
	}
	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.kw, func(t *testing.T) {
			assert.Equal(t, tt.want, containsKeyword(tt.text, tt.kw))
		})
	}
}
