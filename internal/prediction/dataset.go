package prediction

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

var ErrDatasetUnavailable = errors.New("placement dataset unavailable")

// DatasetRecord is one row of the historical placement CSV.
type DatasetRecord struct {
	StudentID   string  `csv:"StudentID"`
	CGPA        float64 `csv:"CGPA"`
	Degree      string  `csv:"Degree"`
	WorkExp     int     `csv:"WorkExp"`
	Internships int     `csv:"Internships"`
	Projects    int     `csv:"Projects"`
	Skills      string  `csv:"Skills"`
	ResumeScore int     `csv:"ResumeScore"`
	SoftSkills  int     `csv:"SoftSkills"`
	Placed      string  `csv:"Placed"`
	Salary      float64 `csv:"Salary"`
}

func (r DatasetRecord) IsPlaced() bool {
	return strings.EqualFold(strings.TrimSpace(r.Placed), "yes")
}

// SkillList splits the comma separated skills column.
func (r DatasetRecord) SkillList() []string {
	parts := strings.Split(r.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dataset is the read-only in-memory table of historical records.
type Dataset struct {
	records []DatasetRecord
}

func NewDataset(records []DatasetRecord) *Dataset {
	return &Dataset{records: records}
}

// ParseDataset decodes the CSV resource.
func ParseDataset(data []byte) (*Dataset, error) {
	var rows []DatasetRecord
	if err := gocsv.Unmarshal(bytes.NewReader(data), &rows); err != nil {
		return nil, fmt.Errorf("failed to decode dataset csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset contains no records")
	}
	return NewDataset(rows), nil
}

func (d *Dataset) Len() int { return len(d.records) }

// Records returns the underlying rows. Callers must not modify them.
func (d *Dataset) Records() []DatasetRecord { return d.records }

type SkillDemand struct {
	Skill     string  `json:"skill"`
	Demand    int     `json:"demand"`
	AvgSalary float64 `json:"avg_salary"`
}

type BranchSalary struct {
	Branch    string  `json:"branch"`
	AvgSalary float64 `json:"avg_salary"`
	Count     int     `json:"count"`
}

type BranchPlacementRate struct {
	Branch string `json:"branch"`
	Rate   int    `json:"rate"`
	Total  int    `json:"total"`
}

type SalaryBand struct {
	Range      string `json:"range"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// IndustryTrends aggregates the dataset for the trends view.
type IndustryTrends struct {
	TopSkills             []SkillDemand         `json:"top_skills"`
	AvgSalaryByBranch     []BranchSalary        `json:"avg_salary_by_branch"`
	PlacementRateByBranch []BranchPlacementRate `json:"placement_rate_by_branch"`
	SalaryDistribution    []SalaryBand          `json:"salary_distribution"`
}

const topSkillsLimit = 10

func (d *Dataset) Trends() IndustryTrends {
	return IndustryTrends{
		TopSkills:             d.topSkills(),
		AvgSalaryByBranch:     d.avgSalaryByBranch(),
		PlacementRateByBranch: d.placementRateByBranch(),
		SalaryDistribution:    d.salaryDistribution(),
	}
}

func (d *Dataset) topSkills() []SkillDemand {
	salaries := make(map[string][]float64)
	for _, r := range d.records {
		if !r.IsPlaced() {
			continue
		}
		for _, s := range r.SkillList() {
			salaries[s] = append(salaries[s], r.Salary)
		}
	}

	out := make([]SkillDemand, 0, len(salaries))
	for skill, vals := range salaries {
		avg, _ := stats.Mean(vals)
		out = append(out, SkillDemand{Skill: skill, Demand: len(vals), AvgSalary: math.Round(avg)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Demand != out[j].Demand {
			return out[i].Demand > out[j].Demand
		}
		return out[i].Skill < out[j].Skill
	})
	if len(out) > topSkillsLimit {
		out = out[:topSkillsLimit]
	}
	return out
}

func (d *Dataset) avgSalaryByBranch() []BranchSalary {
	salaries := make(map[string][]float64)
	for _, r := range d.records {
		if r.IsPlaced() {
			salaries[r.Degree] = append(salaries[r.Degree], r.Salary)
		}
	}

	out := make([]BranchSalary, 0, len(salaries))
	for branch, vals := range salaries {
		avg, _ := stats.Mean(vals)
		out = append(out, BranchSalary{Branch: branch, AvgSalary: math.Round(avg), Count: len(vals)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgSalary != out[j].AvgSalary {
			return out[i].AvgSalary > out[j].AvgSalary
		}
		return out[i].Branch < out[j].Branch
	})
	return out
}

func (d *Dataset) placementRateByBranch() []BranchPlacementRate {
	type tally struct{ placed, total int }
	counts := make(map[string]*tally)
	for _, r := range d.records {
		t, ok := counts[r.Degree]
		if !ok {
			t = &tally{}
			counts[r.Degree] = t
		}
		t.total++
		if r.IsPlaced() {
			t.placed++
		}
	}

	out := make([]BranchPlacementRate, 0, len(counts))
	for branch, t := range counts {
		rate := int(math.Round(float64(t.placed) / float64(t.total) * 100))
		out = append(out, BranchPlacementRate{Branch: branch, Rate: rate, Total: t.total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Branch < out[j].Branch
	})
	return out
}

var salaryBands = []struct {
	label    string
	min, max float64
}{
	{"< 4 LPA", 0, 400000},
	{"4-6 LPA", 400000, 600000},
	{"6-8 LPA", 600000, 800000},
	{"8-10 LPA", 800000, 1000000},
	{"> 10 LPA", 1000000, math.Inf(1)},
}

func (d *Dataset) salaryDistribution() []SalaryBand {
	var placed []float64
	for _, r := range d.records {
		if r.IsPlaced() {
			placed = append(placed, r.Salary)
		}
	}

	out := make([]SalaryBand, 0, len(salaryBands))
	for _, b := range salaryBands {
		count := 0
		for _, s := range placed {
			if s >= b.min && s < b.max {
				count++
			}
		}
		pct := 0
		if len(placed) > 0 {
			pct = int(math.Round(float64(count) / float64(len(placed)) * 100))
		}
		out = append(out, SalaryBand{Range: b.label, Count: count, Percentage: pct})
	}
	return out
}

// Benchmarks places a profile against the whole dataset. Percentiles are the
// share of records strictly below the profile's value.
type Benchmarks struct {
	CGPAPercentile       int `json:"cgpa_percentile"`
	InternshipPercentile int `json:"internship_percentile"`
	ProjectPercentile    int `json:"project_percentile"`
	SkillsMatch          int `json:"skills_match"`
}

func (d *Dataset) Benchmarks(p StudentProfile) Benchmarks {
	if len(d.records) == 0 {
		return Benchmarks{}
	}

	var below struct{ cgpa, intern, proj int }
	var placedSkills []string
	for _, r := range d.records {
		if r.CGPA < p.CGPA {
			below.cgpa++
		}
		if r.Internships < p.InternshipCount {
			below.intern++
		}
		if r.Projects < p.ProjectCount {
			below.proj++
		}
		if r.IsPlaced() {
			for _, s := range r.SkillList() {
				placedSkills = append(placedSkills, strings.ToLower(s))
			}
		}
	}

	n := float64(len(d.records))
	return Benchmarks{
		CGPAPercentile:       int(math.Round(float64(below.cgpa) / n * 100)),
		InternshipPercentile: int(math.Round(float64(below.intern) / n * 100)),
		ProjectPercentile:    int(math.Round(float64(below.proj) / n * 100)),
		SkillsMatch:          skillsMatchPercent(p.Skills, placedSkills),
	}
}

// skillsMatchPercent averages, over the profile's skills, the share of placed
// skill mentions that overlap each skill.
func skillsMatchPercent(skills, placedSkills []string) int {
	if len(skills) == 0 || len(placedSkills) == 0 {
		return 0
	}

	var total float64
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		hits := 0
		for _, s := range placedSkills {
			if strings.Contains(s, lower) || strings.Contains(lower, s) {
				hits++
			}
		}
		total += float64(hits) / float64(len(placedSkills))
	}
	return int(math.Round(total / float64(len(skills)) * 100))
}
