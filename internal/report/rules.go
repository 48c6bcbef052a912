package report

import (
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/prediction"
)

// EstimateProbability is the report's own weighted score: CGPA 35,
// technologies 25, projects 20, internships 15, certifications 5. It is
// independent of prediction.Predictor.
func EstimateProbability(info StudentInfo) (int, prediction.Confidence) {
	score := math.Min(info.CGPA/10*35, 35) +
		math.Min(float64(len(info.Technologies))*2.5, 25) +
		math.Min(float64(prediction.CountValidItems(info.Projects))*4, 20) +
		math.Min(float64(prediction.CountValidItems(info.Internships))*7.5, 15) +
		math.Min(float64(info.Certifications)*2.5, 5)

	prob := int(math.Round(score))
	switch {
	case prob >= 80:
		return prob, prediction.ConfidenceHigh
	case prob >= 60:
		return prob, prediction.ConfidenceMedium
	default:
		return prob, prediction.ConfidenceLow
	}
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func matching(technologies, keywords []string) []string {
	var out []string
	for _, t := range technologies {
		if containsAny(t, keywords) {
			out = append(out, t)
		}
	}
	return out
}

var (
	highDemandTechs   = []string{"javascript", "react", "node.js", "python", "typescript", "aws", "docker"}
	inDemandSkills    = []string{"react", "python", "java", "ml", "ai", "dsa", "sql", "javascript"}
	frontendKeywords  = []string{"react", "vue", "angular", "javascript", "typescript"}
	backendKeywords   = []string{"node", "python", "java", "express", "django"}
	cloudKeywords     = []string{"aws", "azure", "gcp", "docker", "kubernetes"}
	advancedKeywords  = []string{"aws", "docker", "kubernetes", "microservices", "graphql"}
	webDevKeywords    = []string{"react", "node", "javascript"}
	marketRequirement = []string{
		"React.js", "Node.js", "Python", "JavaScript", "TypeScript",
		"AWS", "Docker", "Git", "Database Management", "API Development",
	}
	demandScores = []struct {
		keyword string
		score   int
	}{
		{"javascript", 95}, {"react", 90}, {"node.js", 88}, {"python", 92}, {"typescript", 85},
		{"aws", 87}, {"docker", 83}, {"java", 80}, {"angular", 75}, {"vue", 70},
	}
)

type counts struct {
	projects    int
	internships int
	workYears   int
}

func countsFor(info StudentInfo) counts {
	return counts{
		projects:    prediction.CountValidItems(info.Projects),
		internships: prediction.CountValidItems(info.Internships),
		workYears:   prediction.ParseExperienceYears(info.Experience),
	}
}

// profileFindings applies each threshold rule independently; one profile may
// collect findings from every rule.
func profileFindings(info StudentInfo, c counts) (strengths, weaknesses, recs []string) {
	switch {
	case info.CGPA >= 8.5:
		strengths = append(strengths, fmt.Sprintf("Excellent CGPA of %.1f - Top performer", info.CGPA))
	case info.CGPA >= 7.5:
		strengths = append(strengths, fmt.Sprintf("Good CGPA of %.1f - Above average", info.CGPA))
	case info.CGPA < 6.5:
		weaknesses = append(weaknesses, fmt.Sprintf("CGPA of %.1f is below industry preference", info.CGPA))
	}

	practical := float64(c.workYears) + float64(c.internships)*0.5 + float64(c.projects)*0.3
	switch {
	case c.workYears >= 1:
		strengths = append(strengths, fmt.Sprintf("%d year(s) of work experience - Great advantage", c.workYears))
	case c.internships >= 1 || c.projects >= 2:
		strengths = append(strengths, "Good practical exposure through internships and projects")
	case practical < 1:
		weaknesses = append(weaknesses, "Limited practical exposure - Need more hands-on experience")
	}

	switch {
	case c.internships >= 2:
		strengths = append(strengths, fmt.Sprintf("%d internships completed - Shows initiative", c.internships))
	case c.internships == 1:
		strengths = append(strengths, "1 internship completed - Good start")
	default:
		weaknesses = append(weaknesses, "No internship experience - Critical gap")
	}

	switch {
	case c.projects >= 4:
		strengths = append(strengths, fmt.Sprintf("%d projects - Excellent hands-on experience", c.projects))
	case c.projects >= 2:
		strengths = append(strengths, fmt.Sprintf("%d projects - Good practical work", c.projects))
	case c.projects == 1:
		weaknesses = append(weaknesses, "Need more projects to strengthen portfolio")
	default:
		weaknesses = append(weaknesses, "No projects - Missing practical portfolio")
	}

	if demand := matching(info.Technologies, inDemandSkills); len(demand) >= 3 {
		strengths = append(strengths, "Strong skill set with "+strings.Join(demand, ", "))
	} else {
		weaknesses = append(weaknesses, "Limited in-demand technical skills")
	}

	if info.CGPA < 7.0 {
		recs = append(recs, "Focus on improving academic performance - aim for 7.5+ CGPA")
	}
	if c.internships == 0 {
		recs = append(recs, "Apply for internships to gain practical experience")
	}
	if c.projects < 3 {
		recs = append(recs, "Build more projects to showcase your technical skills")
	}
	if len(info.Technologies) < 3 {
		recs = append(recs, "Learn additional programming languages and frameworks")
	}
	if c.workYears == 0 {
		recs = append(recs, "Consider part-time work or freelancing to gain industry experience")
	}
	if len(matching(info.Technologies, webDevKeywords)) == 0 && containsAny(info.Branch, []string{"computer"}) {
		recs = append(recs, "Learn modern web development frameworks like React.js")
	}
	if len(recs) > 5 {
		recs = recs[:5]
	}
	return strengths, weaknesses, recs
}

// technologyStrengths adds findings about the technology mix and quiz progress.
func technologyStrengths(technologies []string, completed, total int) []string {
	var out []string
	if len(matching(technologies, highDemandTechs)) >= 3 {
		out = append(out, "Strong foundation in high-demand technologies")
	}
	if total > 0 && float64(completed)/float64(total) >= 0.7 {
		out = append(out, "Excellent skill assessment performance")
	}
	fe := matching(technologies, []string{"react", "vue", "angular", "html", "css", "javascript"})
	be := matching(technologies, []string{"node", "python", "java", "express", "django", "spring"})
	if len(fe) >= 2 && len(be) >= 1 {
		out = append(out, "Full-stack development capabilities")
	}
	return out
}

func assessmentWeaknesses(catalog *assessment.Catalog, results []assessment.Result) []string {
	done := make(map[string]bool, len(results))
	for _, r := range results {
		done[r.SkillID] = true
	}

	var out []string
	skills := catalog.Skills()
	if len(skills) > 0 && float64(len(done))/float64(len(skills)) < 0.3 {
		out = append(out, "Limited skill assessment completion")
	}
	for _, category := range []string{"frontend", "backend", "devops"} {
		total, completed := 0, 0
		for _, s := range skills {
			if s.Category != category {
				continue
			}
			total++
			if done[s.ID] {
				completed++
			}
		}
		if total > 0 && float64(completed)/float64(total) < 0.2 {
			out = append(out, fmt.Sprintf("Limited %s experience", category))
		}
	}
	return out
}

// SkillGaps lists market-required skills none of the technologies mention.
func SkillGaps(technologies []string) []string {
	var gaps []string
	for _, req := range marketRequirement {
		covered := false
		for _, t := range technologies {
			if strings.Contains(strings.ToLower(t), strings.ToLower(req)) {
				covered = true
				break
			}
		}
		if !covered {
			gaps = append(gaps, req)
		}
	}
	return gaps
}

func marketDemandScore(technologies []string) int {
	total, matched := 0, 0
	for _, t := range technologies {
		lower := strings.ToLower(t)
		for _, d := range demandScores {
			if strings.Contains(lower, d.keyword) {
				total += d.score
				matched++
			}
		}
	}
	if matched == 0 {
		return 60
	}
	return int(math.Round(float64(total) / float64(matched)))
}

func technicalReadiness(completed, total int) int {
	if total == 0 {
		return 50
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func salaryRange(info StudentInfo, c counts) prediction.SalaryRange {
	avg := 400000 * (info.CGPA / 10) *
		(1 + float64(len(info.Technologies))*0.1) *
		(1 + float64(c.projects)*0.05)
	avg = math.Round(avg)
	return prediction.SalaryRange{
		Min:     math.Round(avg * 0.8),
		Max:     math.Round(avg * 1.3),
		Average: avg,
	}
}

func placementCategory(technologies []string, probability int) string {
	switch {
	case probability >= 85 && len(matching(technologies, highDemandTechs)) >= 4:
		return "Product-Based"
	case probability >= 70:
		return "Service-Based"
	case probability >= 60:
		return "Startup"
	default:
		return "Government"
	}
}

func timelineEstimate(probability int) string {
	switch {
	case probability >= 80:
		return "2-4 months"
	case probability >= 60:
		return "4-6 months"
	default:
		return "6-12 months"
	}
}

func competitionLevel(technologies []string) string {
	switch n := len(matching(technologies, advancedKeywords)); {
	case n >= 3:
		return "Low"
	case n >= 1:
		return "Medium"
	default:
		return "High"
	}
}

func marketInsights(technologies []string) MarketInsights {
	return MarketInsights{
		IndustryTrends: []string{
			"AI/ML integration in software development",
			"Cloud-native application development",
			"Microservices architecture adoption",
			"DevOps and automation practices",
			"Full-stack JavaScript development",
		},
		InDemandSkills: []string{
			"React.js", "Node.js", "Python", "AWS", "Docker",
			"TypeScript", "GraphQL", "Kubernetes", "MongoDB", "PostgreSQL",
		},
		EmergingTechnologies: []string{
			"Next.js", "Rust", "WebAssembly", "Edge Computing",
			"Serverless Architecture", "Blockchain Development",
		},
		SalaryTrends: []TechnologySalary{
			{Technology: "React.js", AverageSalary: 800000, Growth: 15},
			{Technology: "Node.js", AverageSalary: 750000, Growth: 12},
			{Technology: "Python", AverageSalary: 850000, Growth: 18},
			{Technology: "AWS", AverageSalary: 900000, Growth: 20},
			{Technology: "Docker", AverageSalary: 700000, Growth: 14},
		},
		CompetitionLevel: competitionLevel(technologies),
	}
}

var requiredSkillsByRole = map[string][]string{
	"Full Stack Developer": {"JavaScript", "React", "Node.js", "Database", "Git", "API Development"},
	"Frontend Developer":   {"HTML", "CSS", "JavaScript", "React", "TypeScript", "Responsive Design"},
	"Backend Developer":    {"Python/Java/Node.js", "Database", "API Development", "Security", "Testing"},
	"Software Developer":   {"Programming Languages", "Problem Solving", "Git", "Testing", "Database"},
}

// SuggestCareerPath classifies the technology mix into a primary role.
func SuggestCareerPath(technologies []string, workYears int) CareerPath {
	fe := len(matching(technologies, frontendKeywords))
	be := len(matching(technologies, backendKeywords))
	cloud := len(matching(technologies, cloudKeywords))

	role := "Software Developer"
	var alternatives []string
	switch {
	case fe >= 2 && be >= 1:
		role = "Full Stack Developer"
		alternatives = append(alternatives, "Frontend Developer", "Backend Developer")
	case fe >= 2:
		role = "Frontend Developer"
		alternatives = append(alternatives, "UI/UX Developer", "React Developer")
	case be >= 2:
		role = "Backend Developer"
		alternatives = append(alternatives, "API Developer", "Database Developer")
	}
	if cloud >= 2 {
		alternatives = append(alternatives, "DevOps Engineer", "Cloud Engineer")
	}
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}
	if alternatives == nil {
		alternatives = []string{}
	}

	level := "Entry"
	switch {
	case workYears >= 5:
		level = "Senior"
	case workYears >= 2:
		level = "Mid"
	}

	return CareerPath{
		PrimaryRole:      role,
		AlternativeRoles: alternatives,
		ProgressionPath: []string{
			"Junior Developer", "Software Developer", "Senior Developer", "Tech Lead", "Engineering Manager",
		},
		RequiredSkills:  requiredSkillsByRole[role],
		ExperienceLevel: level,
	}
}

func recommendations(info StudentInfo, analysis SkillAnalysis, profileRecs []string) Recommendations {
	r := Recommendations{Profile: profileRecs}

	if analysis.CompletedSkills < 5 {
		r.Immediate = append(r.Immediate, "Complete at least 3 skill assessments to understand your current level")
	}
	r.Immediate = append(r.Immediate,
		"Update your resume with latest projects and skills",
		"Set up a professional LinkedIn profile",
	)

	if info.CGPA < 7.0 {
		r.ShortTerm = append(r.ShortTerm, "Focus on improving academic performance")
	}
	r.ShortTerm = append(r.ShortTerm,
		"Build 2-3 portfolio projects showcasing different technologies",
		"Apply for internships to gain practical experience",
	)

	r.LongTerm = []string{
		"Contribute to open-source projects",
		"Attend tech conferences and networking events",
		"Consider specializing in a high-demand area",
	}

	for i, gap := range analysis.SkillGaps {
		if i == 5 {
			break
		}
		r.SkillPriorities = append(r.SkillPriorities, fmt.Sprintf("Learn %s - high market demand", gap))
	}

	if len(matching(info.Technologies, []string{"aws", "cloud"})) > 0 {
		r.CertificationSuggestions = append(r.CertificationSuggestions, "AWS Certified Solutions Architect")
	}
	r.CertificationSuggestions = append(r.CertificationSuggestions,
		"Google Cloud Professional Developer",
		"Microsoft Azure Fundamentals",
	)
	return r
}

// buildActionPlan fills the fixed 30/90/180 day templates with counts.
func buildActionPlan(analysis SkillAnalysis, c counts) ActionPlan {
	remaining := analysis.TotalSkills - analysis.CompletedSkills
	projectsToBuild := 3 - c.projects
	if projectsToBuild < 1 {
		projectsToBuild = 1
	}

	plan := ActionPlan{
		Next30Days: []string{
			fmt.Sprintf("Complete skill assessments in weak areas (%d of %d remaining)", remaining, analysis.TotalSkills),
			"Update portfolio with recent projects",
			"Apply to 5 companies each week",
			"Practice coding problems daily",
		},
		Next90Days: []string{
			fmt.Sprintf("Build %d new portfolio project(s)", projectsToBuild),
			fmt.Sprintf("Complete online courses for %d skill gap(s)", len(analysis.SkillGaps)),
			"Attend virtual tech meetups",
			"Get 3 professional references",
		},
		Next6Months: []string{
			"Contribute to open-source projects",
			"Build professional network",
			"Prepare for technical interviews",
		},
		Milestones: []Milestone{
			{Target: "Complete 80% of skill assessments", Deadline: "30 days", Priority: "High"},
			{Target: fmt.Sprintf("Build %d portfolio projects", c.projects+projectsToBuild), Deadline: "90 days", Priority: "High"},
			{Target: "Apply to 50+ companies", Deadline: "6 months", Priority: "Medium"},
		},
	}
	if c.internships == 0 {
		plan.Next6Months = append([]string{"Gain internship or project experience"}, plan.Next6Months...)
	}
	return plan
}
