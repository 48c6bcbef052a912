package report

import (
	"time"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/prediction"
)

type StudentInfo struct {
	Name           string   `json:"name"`
	CGPA           float64  `json:"cgpa"`
	Branch         string   `json:"branch"`
	Technologies   []string `json:"technologies"`
	Projects       []string `json:"projects"`
	Internships    []string `json:"internships"`
	Certifications int      `json:"certifications"`
	Experience     string   `json:"experience"`
}

// Input is everything the generator reads. Prediction and Assessments are
// optional.
type Input struct {
	Student     StudentInfo
	Prediction  *prediction.PredictionResult
	Assessments []assessment.Result
}

type PlacementPrediction struct {
	Probability       int                    `json:"probability"`
	Confidence        prediction.Confidence  `json:"confidence"`
	ExpectedSalary    prediction.SalaryRange `json:"expected_salary"`
	PlacementCategory string                 `json:"placement_category"`
	TimelineEstimate  string                 `json:"timeline_estimate"`
}

type SkillAnalysis struct {
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	CompletedSkills    int      `json:"completed_skills"`
	TotalSkills        int      `json:"total_skills"`
	SkillGaps          []string `json:"skill_gaps"`
	MarketDemandScore  int      `json:"market_demand_score"`
	TechnicalReadiness int      `json:"technical_readiness"`
}

type TechnologySalary struct {
	Technology    string  `json:"technology"`
	AverageSalary float64 `json:"average_salary"`
	Growth        int     `json:"growth"`
}

type MarketInsights struct {
	IndustryTrends       []string           `json:"industry_trends"`
	InDemandSkills       []string           `json:"in_demand_skills"`
	EmergingTechnologies []string           `json:"emerging_technologies"`
	SalaryTrends         []TechnologySalary `json:"salary_trends"`
	CompetitionLevel     string             `json:"competition_level"`
}

type Recommendations struct {
	Profile                  []string `json:"profile"`
	Immediate                []string `json:"immediate"`
	ShortTerm                []string `json:"short_term"`
	LongTerm                 []string `json:"long_term"`
	SkillPriorities          []string `json:"skill_priorities"`
	CertificationSuggestions []string `json:"certification_suggestions"`
}

type CareerPath struct {
	PrimaryRole      string   `json:"primary_role"`
	AlternativeRoles []string `json:"alternative_roles"`
	ProgressionPath  []string `json:"progression_path"`
	RequiredSkills   []string `json:"required_skills"`
	ExperienceLevel  string   `json:"experience_level"`
}

type Milestone struct {
	Target   string `json:"target"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority"`
}

type ActionPlan struct {
	Next30Days  []string    `json:"next_30_days"`
	Next90Days  []string    `json:"next_90_days"`
	Next6Months []string    `json:"next_6_months"`
	Milestones  []Milestone `json:"milestones"`
}

// PlacementReport is built fresh on every request and never stored.
type PlacementReport struct {
	ID                  string                       `json:"id"`
	GeneratedAt         time.Time                    `json:"generated_at"`
	StudentInfo         StudentInfo                  `json:"student_info"`
	PlacementPrediction PlacementPrediction          `json:"placement_prediction"`
	SkillAnalysis       SkillAnalysis                `json:"skill_analysis"`
	MarketInsights      MarketInsights               `json:"market_insights"`
	Recommendations     Recommendations              `json:"recommendations"`
	CareerPath          CareerPath                   `json:"career_path"`
	ActionPlan          ActionPlan                   `json:"action_plan"`
	Summary             string                       `json:"summary"`
	SummarySource       string                       `json:"summary_source"`
	ModelPrediction     *prediction.PredictionResult `json:"model_prediction,omitempty"`
}
