package prediction

import (
	"context"
	"fmt"
	"strings"
)

const testModelJSON = `{
  "model_type": "LogisticRegression",
  "coefficients": [0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1],
  "intercept": 0.2,
  "feature_names": ["CGPA", "WorkExp", "Internships", "Projects", "ResumeScore", "SoftSkills", "Degree_Encoded",
    "CGPA_Squared", "Total_Experience", "Project_Intensity", "Skill_Resume_Ratio", "Excellence_Score", "Is_CS_Branch",
    "skill_react", "skill_python", "skill_aws", "poly_0", "poly_1"],
  "scaler_mean": [7.5, 0.5, 1, 2, 75, 75, 1, 56, 1, 1, 1, 0.5, 0.5],
  "scaler_scale": [1, 1, 1, 2, 10, 10, 1, 15, 1, 1, 0, 0.1, 0.5],
  "degree_classes": ["Civil Engineering", "Computer Science Engineering", "Mechanical Engineering"],
  "skills_vocabulary": {"react": 0, "python": 1, "aws": 2},
  "skills_idf": [2, 1, 1.5],
  "training_info": {"n_features": 18, "accuracy": "0.87", "trained_on": "2024-03-01"}
}`

func testModel() *ModelParameters {
	m, err := ParseModelParameters([]byte(testModelJSON))
	if err != nil {
		panic(err)
	}
	return m
}

// linearModel builds a model whose probability is sigmoid(intercept).
func linearModel(intercept float64) *ModelParameters {
	m := testModel()
	m.Intercept = intercept
	m.Coefficients = make([]float64, len(m.Coefficients))
	return m
}

func staticModel(m *ModelParameters) ModelSource {
	return ModelSourceFunc(func(context.Context) (*ModelParameters, error) { return m, nil })
}

func staticDataset(ds *Dataset) DatasetSource {
	return DatasetSourceFunc(func(context.Context) (*Dataset, error) { return ds, nil })
}

func missingModel() ModelSource {
	return ModelSourceFunc(func(context.Context) (*ModelParameters, error) { return nil, ErrModelUnavailable })
}

func missingDataset() DatasetSource {
	return DatasetSourceFunc(func(context.Context) (*Dataset, error) { return nil, ErrDatasetUnavailable })
}

func csvFromRecords(records []DatasetRecord) string {
	var b strings.Builder
	b.WriteString("StudentID,CGPA,Degree,WorkExp,Internships,Projects,Skills,ResumeScore,SoftSkills,Placed,Salary\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%s,%g,%s,%d,%d,%d,\"%s\",%d,%d,%s,%g\n",
			r.StudentID, r.CGPA, r.Degree, r.WorkExp, r.Internships, r.Projects,
			r.Skills, r.ResumeScore, r.SoftSkills, r.Placed, r.Salary)
	}
	return b.String()
}

func identicalRecords(n int, rec DatasetRecord) []DatasetRecord {
	out := make([]DatasetRecord, n)
	for i := range out {
		out[i] = rec
		out[i].StudentID = fmt.Sprintf("S%03d", i+1)
	}
	return out
}

func strongCSProfile() StudentProfile {
	return StudentProfile{
		CGPA:            9.0,
		Branch:          "Computer Science Engineering",
		WorkExpYears:    1,
		InternshipCount: 2,
		ProjectCount:    4,
		Skills:          []string{"React", "Python", "AWS"},
	}
}
