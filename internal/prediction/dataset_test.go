package prediction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `StudentID,CGPA,Degree,WorkExp,Internships,Projects,Skills,ResumeScore,SoftSkills,Placed,Salary
S001,8.5,Computer Science Engineering,1,2,4,"React, Python, AWS",88,80,Yes,900000
S002,7.2,Computer Science Engineering,0,1,2,"Java, SQL",72,70,Yes,500000
S003,6.1,Mechanical Engineering,0,0,1,"AutoCAD",60,65,No,0
S004,7.8,Information Technology,0,1,3,"Python, Django",80,75,Yes,650000
S005,5.9,Civil Engineering,0,0,0,"AutoCAD, Revit",55,60,No,0
S006,9.1,Computer Science Engineering,2,3,5,"Python, Machine Learning",92,85,Yes,1200000
`

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 6, ds.Len())

	first := ds.Records()[0]
	assert.Equal(t, "S001", first.StudentID)
	assert.Equal(t, 8.5, first.CGPA)
	assert.True(t, first.IsPlaced())
	assert.Equal(t, []string{"React", "Python", "AWS"}, first.SkillList())
	assert.False(t, ds.Records()[2].IsPlaced())

	_, err = ParseDataset([]byte("StudentID,CGPA\n"))
	assert.Error(t, err)
}

func TestDataset_Trends(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleCSV))
	require.NoError(t, err)

	trends := ds.Trends()

	require.NotEmpty(t, trends.TopSkills)
	assert.Equal(t, SkillDemand{Skill: "Python", Demand: 3, AvgSalary: 916667}, trends.TopSkills[0])

	require.Len(t, trends.AvgSalaryByBranch, 2)
	assert.Equal(t, "Computer Science Engineering", trends.AvgSalaryByBranch[0].Branch)
	assert.Equal(t, 866667.0, trends.AvgSalaryByBranch[0].AvgSalary)
	assert.Equal(t, 3, trends.AvgSalaryByBranch[0].Count)

	rates := map[string]int{}
	for _, r := range trends.PlacementRateByBranch {
		rates[r.Branch] = r.Rate
	}
	assert.Equal(t, 100, rates["Computer Science Engineering"])
	assert.Equal(t, 0, rates["Civil Engineering"])

	require.Len(t, trends.SalaryDistribution, 5)
	assert.Equal(t, SalaryBand{Range: "4-6 LPA", Count: 1, Percentage: 25}, trends.SalaryDistribution[1])
	assert.Equal(t, SalaryBand{Range: "> 10 LPA", Count: 1, Percentage: 25}, trends.SalaryDistribution[4])
}

func TestDataset_Benchmarks(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleCSV))
	require.NoError(t, err)

	b := ds.Benchmarks(StudentProfile{CGPA: 8, InternshipCount: 1, ProjectCount: 3, Skills: []string{"python"}})

	assert.Equal(t, 67, b.CGPAPercentile)
	assert.Equal(t, 33, b.InternshipPercentile)
	assert.Equal(t, 50, b.ProjectPercentile)
	assert.Equal(t, 33, b.SkillsMatch)

	assert.Equal(t, Benchmarks{}, NewDataset(nil).Benchmarks(strongCSProfile()))
}

func TestStatisticalEstimator_IdenticalPlacedRecords(t *testing.T) {
	ds := NewDataset(identicalRecords(20, DatasetRecord{
		CGPA: 8, Degree: "Computer Science Engineering", WorkExp: 1, Internships: 2, Projects: 4,
		Skills: "React, Python", Placed: "Yes", Salary: 800000,
	}))
	est, err := NewStatisticalEstimator(NewDatasetNeighbors(staticDataset(ds))).
		Estimate(context.Background(), strongCSProfile())
	require.NoError(t, err)

	assert.Equal(t, 20, est.Neighbors)
	assert.Equal(t, 1.0, est.BaseProbability)
	assert.LessOrEqual(t, est.Probability, 0.98)
	assert.Equal(t, 0.98, est.Probability)
	assert.Equal(t, SalaryRange{Min: 720000, Max: 1170000, Average: 900000}, est.Salary)
}

func TestStatisticalEstimator_KeepsNearestFifty(t *testing.T) {
	far := identicalRecords(60, DatasetRecord{CGPA: 5, Degree: "CSE", Placed: "No"})
	near := identicalRecords(50, DatasetRecord{
		CGPA: 9, Degree: "CSE", WorkExp: 1, Internships: 2, Projects: 4, Skills: "React, Python, AWS",
		Placed: "Yes", Salary: 1000000,
	})
	ds := NewDataset(append(far, near...))

	est, err := NewStatisticalEstimator(NewDatasetNeighbors(staticDataset(ds))).
		Estimate(context.Background(), strongCSProfile())
	require.NoError(t, err)

	assert.Equal(t, 50, est.Neighbors)
	assert.Equal(t, 50, est.PlacedNeighbors)
}

func TestStatisticalEstimator_NoNeighbours(t *testing.T) {
	ds := NewDataset(identicalRecords(5, DatasetRecord{CGPA: 8, Degree: "Civil Engineering", Placed: "Yes", Salary: 500000}))
	profile := StudentProfile{CGPA: 5, Branch: "Biotechnology"}

	est, err := NewStatisticalEstimator(NewDatasetNeighbors(staticDataset(ds))).
		Estimate(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, 0, est.Neighbors)
	assert.InDelta(t, 0.15, est.BaseProbability, 1e-9)
	assert.InDelta(t, 0.15, est.Probability, 1e-9)
	assert.Equal(t, SalaryRange{Min: 320000, Max: 520000, Average: 400000}, est.Salary)
}

func TestExpectedSalary_HeuristicBonuses(t *testing.T) {
	got := expectedSalary(strongCSProfile(), nil)
	assert.Equal(t, 1100000.0, got.Average)
	assert.Equal(t, 880000.0, got.Min)
	assert.Equal(t, 1430000.0, got.Max)
}

func TestHasHighValueSkill(t *testing.T) {
	assert.True(t, HasHighValueSkill([]string{"ReactJS"}))
	assert.True(t, HasHighValueSkill([]string{"AWS Lambda"}))
	assert.False(t, HasHighValueSkill([]string{"AutoCAD", "Excel"}))
	assert.False(t, HasHighValueSkill(nil))
}

type failingNeighbors struct{ calls int }

func (f *failingNeighbors) Candidates(context.Context, StudentProfile) ([]DatasetRecord, error) {
	f.calls++
	return nil, assert.AnError
}

func TestChainNeighbors(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleCSV))
	require.NoError(t, err)

	broken := &failingNeighbors{}
	chain := ChainNeighbors(broken, NewDatasetNeighbors(staticDataset(ds)))

	got, err := chain.Candidates(context.Background(), StudentProfile{Branch: "CSE"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, broken.calls)

	_, err = ChainNeighbors(broken).Candidates(context.Background(), StudentProfile{})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = ChainNeighbors().Candidates(context.Background(), StudentProfile{})
	assert.Error(t, err)
}

type emptyNeighbors struct{ calls int }

func (e *emptyNeighbors) Candidates(context.Context, StudentProfile) ([]DatasetRecord, error) {
	e.calls++
	return []DatasetRecord{}, nil
}

func TestChainNeighbors_EmptySourceFallsThrough(t *testing.T) {
	ds := NewDataset(identicalRecords(20, DatasetRecord{
		CGPA: 7.5, Degree: "Civil Engineering", WorkExp: 1, Internships: 1, Projects: 2,
		Skills: "AutoCAD", Placed: "Yes", Salary: 450000,
	}))
	profile := StudentProfile{CGPA: 7.5, Branch: "Civil Engineering", WorkExpYears: 1, InternshipCount: 1, ProjectCount: 2}
	scan := NewDatasetNeighbors(staticDataset(ds))

	direct, err := NewStatisticalEstimator(scan).Estimate(context.Background(), profile)
	require.NoError(t, err)

	empty := &emptyNeighbors{}
	chained, err := NewStatisticalEstimator(ChainNeighbors(empty, scan)).Estimate(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 20, chained.Neighbors)
	assert.Equal(t, direct.Neighbors, chained.Neighbors)
	assert.InDelta(t, direct.Probability, chained.Probability, 1e-9)

	t.Run("all sources empty", func(t *testing.T) {
		got, err := ChainNeighbors(&emptyNeighbors{}, &emptyNeighbors{}).Candidates(context.Background(), profile)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("failure then empty is not an error", func(t *testing.T) {
		got, err := ChainNeighbors(&failingNeighbors{}, &emptyNeighbors{}).Candidates(context.Background(), profile)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
