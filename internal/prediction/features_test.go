package prediction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstringMatcher_Weight(t *testing.T) {
	m := SubstringMatcher{}
	tests := []struct {
		skill, term string
		want        float64
	}{
		{"react", "react", 2},
		{"react native", "react", 1},
		{"aws", "aws lambda", 1},
		{"go", "golang", 0},
		{"java", "python", 0},
		{"", "react", 0},
	}

	for _, tt := range tests {
		t.Run(tt.skill+"/"+tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Weight(tt.skill, tt.term))
		})
	}
}

func TestFeatureExtractor_Order(t *testing.T) {
	m := testModel()
	p := StudentProfile{
		CGPA:            8,
		Branch:          "Computer Science Engineering",
		WorkExpYears:    1,
		InternshipCount: 2,
		ProjectCount:    3,
		Skills:          []string{"React", "Python"},
		ResumeUploaded:  true,
	}

	v, err := NewFeatureExtractor().Extract(p, m)
	require.NoError(t, err)
	require.Len(t, v, m.FeatureCount())

	assert.Equal(t, []float64{8, 1, 2, 3, 85, 75}, []float64(v[:6]))
	assert.Equal(t, 1.0, v[6], "branch index")
	assert.Equal(t, 64.0, v[7])
	assert.Equal(t, 2.0, v[8])
	assert.Equal(t, 1.5, v[9])
	assert.InDelta(t, 85.0/76.0, v[10], 1e-9)
	assert.InDelta(t, 0.512, v[11], 1e-9)
	assert.Equal(t, 1.0, v[12])

	// react: exact (2) / 2 skills * idf 2; python: 2 / 2 * idf 1
	assert.InDelta(t, 2.0, v[13], 1e-9)
	assert.InDelta(t, 1.0, v[14], 1e-9)
	assert.Equal(t, 0.0, v[15])
	assert.Equal(t, []float64{0, 0}, []float64(v[16:]))
}

func TestFeatureExtractor_UnknownBranchDefaultsToZero(t *testing.T) {
	m := testModel()
	_, ok := m.BranchIndex("Biotechnology")
	assert.False(t, ok)

	v, err := NewFeatureExtractor().Extract(StudentProfile{Branch: "Biotechnology"}, m)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v[6])
	assert.Equal(t, 0.0, v[12])
}

func TestFeatureExtractor_LengthMatchesModel(t *testing.T) {
	profiles := []StudentProfile{
		{},
		strongCSProfile(),
		{CGPA: 6.1, Branch: "Civil", Skills: []string{"AutoCAD", "aws", "react native", "x"}},
	}

	for _, featureCount := range []int{5, 16, 18, 40} {
		m := testModel()
		names := make([]string, featureCount)
		for i := range names {
			names[i] = "f"
		}
		m.FeatureNames = names

		for _, p := range profiles {
			v, err := NewFeatureExtractor().Extract(p, m)
			require.NoError(t, err)
			assert.Len(t, v, featureCount)
		}
	}
}

func TestFeatureExtractor_StrictShape(t *testing.T) {
	m := testModel()
	m.FeatureNames = m.FeatureNames[:10]

	_, err := NewFeatureExtractor(WithStrictShape(true)).Extract(strongCSProfile(), m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFeatureShape))
}

func TestFeatureExtractor_SkillMatcherSwap(t *testing.T) {
	m := testModel()
	p := StudentProfile{Skills: []string{"React Native"}}

	loose, err := NewFeatureExtractor().Extract(p, m)
	require.NoError(t, err)
	exact, err := NewFeatureExtractor(WithSkillMatcher(ExactMatcher{})).Extract(p, m)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, loose[13], 1e-9)
	assert.Equal(t, 0.0, exact[13])
}

func TestFeatureExtractor_NilModel(t *testing.T) {
	_, err := NewFeatureExtractor().Extract(strongCSProfile(), nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestParseModelParameters(t *testing.T) {
	m, err := ParseModelParameters([]byte(testModelJSON))
	require.NoError(t, err)
	assert.Equal(t, 18, m.FeatureCount())
	assert.Equal(t, 3, m.VocabularySize())
	assert.Equal(t, "0.87", m.TrainingInfo.Accuracy)

	_, err = ParseModelParameters([]byte(`{"coefficients": "nope"}`))
	assert.ErrorIs(t, err, ErrInvalidModel)

	_, err = ParseModelParameters([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidModel)

	mismatched := `{"coefficients":[1],"intercept":0,"feature_names":["a"],"scaler_mean":[1,2],
		"scaler_scale":[1],"degree_classes":[],"skills_vocabulary":{},"skills_idf":[]}`
	_, err = ParseModelParameters([]byte(mismatched))
	assert.ErrorIs(t, err, ErrInvalidModel)
}
