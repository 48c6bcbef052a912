package prediction

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
)

const (
	neighborLimit      = 50
	maxFallbackProb    = 0.98
	thresholdBonus     = 0.10
	highValueSkillBump = 0.05
	baseSalary         = 400000
)

// Skills that earn the flat fallback bonus when any one is declared.
var highValueSkills = []string{
	"react", "python", "aws", "docker", "kubernetes", "machine learning", "node.js", "typescript",
}

// NeighborSource yields candidate records for a profile. Implementations may
// pre-filter, but the estimator always re-ranks with its own similarity.
type NeighborSource interface {
	Candidates(ctx context.Context, p StudentProfile) ([]DatasetRecord, error)
}

// DatasetNeighbors scans the whole in-memory dataset for same-branch rows.
type DatasetNeighbors struct {
	source DatasetSource
}

func NewDatasetNeighbors(source DatasetSource) *DatasetNeighbors {
	return &DatasetNeighbors{source: source}
}

func (n *DatasetNeighbors) Candidates(ctx context.Context, p StudentProfile) ([]DatasetRecord, error) {
	ds, err := n.source.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	branch := NormalizeBranch(p.Branch)
	var out []DatasetRecord
	for _, r := range ds.Records() {
		if NormalizeBranch(r.Degree) == branch {
			out = append(out, r)
		}
	}
	return out, nil
}

// ChainNeighbors asks each source in turn and returns the first non-empty
// answer. A source that fails or finds nothing, such as an index nobody has
// filled yet, hands over to the next one.
func ChainNeighbors(sources ...NeighborSource) NeighborSource {
	return neighborChain(sources)
}

type neighborChain []NeighborSource

func (c neighborChain) Candidates(ctx context.Context, p StudentProfile) ([]DatasetRecord, error) {
	err := errors.New("no neighbour sources configured")
	answered := false
	for _, src := range c {
		out, srcErr := src.Candidates(ctx, p)
		if srcErr != nil {
			log.Printf("⚠️ Neighbour source failed: %v", srcErr)
			err = srcErr
			continue
		}
		if len(out) > 0 {
			return out, nil
		}
		answered = true
	}
	if answered {
		return []DatasetRecord{}, nil
	}
	return nil, err
}

// SalaryRange is an expected salary band in rupees per annum.
type SalaryRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

func salaryRangeAround(avg float64) SalaryRange {
	avg = math.Round(avg)
	return SalaryRange{
		Min:     math.Round(avg * 0.8),
		Max:     math.Round(avg * 1.3),
		Average: avg,
	}
}

// StatisticalEstimate is the output of the nearest-neighbour fallback.
type StatisticalEstimate struct {
	Probability     float64
	BaseProbability float64
	Neighbors       int
	PlacedNeighbors int
	Salary          SalaryRange
}

// StatisticalEstimator scores a profile against similar historical records.
type StatisticalEstimator struct {
	neighbors NeighborSource
	limit     int
}

func NewStatisticalEstimator(neighbors NeighborSource) *StatisticalEstimator {
	return &StatisticalEstimator{neighbors: neighbors, limit: neighborLimit}
}

func (s *StatisticalEstimator) Estimate(ctx context.Context, p StudentProfile) (*StatisticalEstimate, error) {
	candidates, err := s.neighbors.Candidates(ctx, p)
	if err != nil {
		return nil, err
	}

	nearest := s.nearest(p, candidates)

	est := &StatisticalEstimate{Neighbors: len(nearest)}
	if len(nearest) == 0 {
		est.BaseProbability = profileStrength(p)
	} else {
		for _, r := range nearest {
			if r.IsPlaced() {
				est.PlacedNeighbors++
			}
		}
		est.BaseProbability = float64(est.PlacedNeighbors) / float64(len(nearest))
	}

	est.Probability = clamp(est.BaseProbability+fallbackBonus(p), 0, maxFallbackProb)
	est.Salary = expectedSalary(p, nearest)
	return est, nil
}

func (s *StatisticalEstimator) nearest(p StudentProfile, candidates []DatasetRecord) []DatasetRecord {
	branch := NormalizeBranch(p.Branch)

	type scored struct {
		rec DatasetRecord
		sim float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, r := range candidates {
		if NormalizeBranch(r.Degree) != branch {
			continue
		}
		ranked = append(ranked, scored{rec: r, sim: similarity(p, r)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].sim > ranked[j].sim })

	if len(ranked) > s.limit {
		ranked = ranked[:s.limit]
	}
	out := make([]DatasetRecord, len(ranked))
	for i, sc := range ranked {
		out[i] = sc.rec
	}
	return out
}

// similarity is a weighted closeness score. The weights sum to one.
func similarity(p StudentProfile, r DatasetRecord) float64 {
	sim := 0.0
	sim += (1 - math.Abs(p.CGPA-r.CGPA)/10) * 0.3
	sim += (1 - math.Abs(float64(p.WorkExpYears-r.WorkExp))/5) * 0.2
	sim += (1 - math.Abs(float64(p.InternshipCount-r.Internships))/5) * 0.2
	sim += (1 - math.Abs(float64(p.ProjectCount-r.Projects))/10) * 0.2
	sim += skillsOverlap(p.Skills, r.SkillList()) * 0.1
	return sim
}

func skillsOverlap(profileSkills, rowSkills []string) float64 {
	denom := len(profileSkills)
	if len(rowSkills) > denom {
		denom = len(rowSkills)
	}
	if denom == 0 {
		return 0
	}

	rows := make([]string, len(rowSkills))
	for i, s := range rowSkills {
		rows[i] = strings.ToLower(s)
	}

	hits := 0
	for _, s := range profileSkills {
		skill := strings.ToLower(s)
		for _, rs := range rows {
			if strings.Contains(rs, skill) || strings.Contains(skill, rs) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(denom)
}

// profileStrength scores a profile out of 100 points and returns the ratio.
func profileStrength(p StudentProfile) float64 {
	points := math.Min(p.CGPA/10*30, 30) +
		math.Min(float64(p.WorkExpYears)/3*20, 20) +
		math.Min(float64(p.InternshipCount)/3*15, 15) +
		math.Min(float64(p.ProjectCount)/5*20, 20) +
		math.Min(float64(len(p.Skills))/10*15, 15)
	return points / 100
}

func fallbackBonus(p StudentProfile) float64 {
	bonus := 0.0
	if p.CGPA >= 8.5 {
		bonus += thresholdBonus
	}
	if p.InternshipCount >= 2 {
		bonus += thresholdBonus
	}
	if p.ProjectCount >= 3 {
		bonus += thresholdBonus
	}
	if p.WorkExpYears >= 1 {
		bonus += thresholdBonus
	}
	if HasHighValueSkill(p.Skills) {
		bonus += highValueSkillBump
	}
	return bonus
}

// HasHighValueSkill reports whether any declared skill mentions a
// high-value technology.
func HasHighValueSkill(skills []string) bool {
	for _, s := range skills {
		lower := strings.ToLower(s)
		for _, hv := range highValueSkills {
			if strings.Contains(lower, hv) {
				return true
			}
		}
	}
	return false
}

func expectedSalary(p StudentProfile, neighbors []DatasetRecord) SalaryRange {
	var salaries, cgpas []float64
	for _, r := range neighbors {
		if r.IsPlaced() && r.Salary > 0 {
			salaries = append(salaries, r.Salary)
			cgpas = append(cgpas, r.CGPA)
		}
	}

	if len(salaries) == 0 {
		avg := float64(baseSalary)
		if p.CGPA >= 8.5 {
			avg += 200000
		}
		if p.InternshipCount >= 2 {
			avg += 150000
		}
		if p.ProjectCount >= 3 {
			avg += 100000
		}
		if p.WorkExpYears >= 1 {
			avg += 250000
		}
		return salaryRangeAround(avg)
	}

	avgSalary, _ := stats.Mean(salaries)
	avgCGPA, _ := stats.Mean(cgpas)
	multiplier := 1.0
	if avgCGPA > 0 {
		multiplier = p.CGPA / avgCGPA
	}
	return salaryRangeAround(avgSalary * multiplier)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
