package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/ats"
	"alfredoptarigan/placement-predictor/internal/models"
	"alfredoptarigan/placement-predictor/internal/prediction"
	"alfredoptarigan/placement-predictor/internal/report"
	"alfredoptarigan/placement-predictor/internal/repositories"
)

var ErrNoResume = errors.New("no resume uploaded")

// PlacementService ties stored profiles to the prediction, report, ATS and
// assessment components.
type PlacementService interface {
	Predict(ctx context.Context, studentID uuid.UUID) (*prediction.PredictionResult, error)
	Report(ctx context.Context, studentID uuid.UUID) (*report.PlacementReport, error)
	AnalyzeResume(ctx context.Context, studentID uuid.UUID) (*ResumeAnalysis, error)
	SubmitAssessment(ctx context.Context, studentID uuid.UUID, req *models.SubmitAssessmentRequest) (*AssessmentOutcome, error)
	Assessments(ctx context.Context, studentID uuid.UUID) (*AssessmentSummary, error)
	Recommendations(ctx context.Context, studentID uuid.UUID) ([]assessment.Skill, error)
	GapAnalysis(ctx context.Context, studentID uuid.UUID, role string) (*assessment.GapAnalysis, error)
	Trends(ctx context.Context) (*prediction.IndustryTrends, error)
	ModelInfo(ctx context.Context) (*prediction.TrainingInfo, error)
}

type ResumeAnalysis struct {
	DocumentID uuid.UUID  `json:"document_id"`
	PageCount  int        `json:"page_count"`
	Score      *ats.Score `json:"score"`
}

type AssessmentOutcome struct {
	Result      *assessment.Result `json:"result"`
	Suggestions []string           `json:"suggestions"`
}

type AssessmentSummary struct {
	Results      []assessment.Result `json:"results"`
	OverallScore int                 `json:"overall_score"`
	Completed    int                 `json:"completed"`
	Total        int                 `json:"total"`
}

type placementService struct {
	studentRepo    repositories.StudentRepository
	docRepo        repositories.DocumentRepository
	assessmentRepo repositories.AssessmentRepository
	pdfParser      PDFParserService
	predictor      *prediction.Predictor
	datasets       prediction.DatasetSource
	reports        *report.Generator
	catalog        *assessment.Catalog
	now            func() time.Time
}

func NewPlacementService(
	studentRepo repositories.StudentRepository,
	docRepo repositories.DocumentRepository,
	assessmentRepo repositories.AssessmentRepository,
	pdfParser PDFParserService,
	predictor *prediction.Predictor,
	datasets prediction.DatasetSource,
	reports *report.Generator,
	catalog *assessment.Catalog,
) PlacementService {
	return &placementService{
		studentRepo:    studentRepo,
		docRepo:        docRepo,
		assessmentRepo: assessmentRepo,
		pdfParser:      pdfParser,
		predictor:      predictor,
		datasets:       datasets,
		reports:        reports,
		catalog:        catalog,
		now:            time.Now,
	}
}

// ProfileFromStudent maps a stored profile onto the predictor's input.
func ProfileFromStudent(s *models.Student, resumeUploaded bool) prediction.StudentProfile {
	return prediction.NewStudentProfile(prediction.RawProfile{
		CGPA:           s.CGPA,
		Branch:         s.Branch,
		Experience:     s.Experience,
		Internships:    s.Internships,
		Projects:       s.Projects,
		Technologies:   s.Technologies,
		ResumeUploaded: resumeUploaded,
		SoftSkills:     s.SoftSkills,
	})
}

func StudentInfoFrom(s *models.Student, certifications int) report.StudentInfo {
	return report.StudentInfo{
		Name:           s.Name,
		CGPA:           s.CGPA,
		Branch:         s.Branch,
		Technologies:   s.Technologies,
		Projects:       s.Projects,
		Internships:    s.Internships,
		Certifications: certifications,
		Experience:     s.Experience,
	}
}

func (p *placementService) Predict(ctx context.Context, studentID uuid.UUID) (*prediction.PredictionResult, error) {
	student, err := p.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	resumes, err := p.docRepo.CountByType(studentID, models.FileTypeResume)
	if err != nil {
		return nil, err
	}

	result := p.predictor.Predict(ctx, ProfileFromStudent(student, resumes > 0))
	log.Printf("🔮 Prediction for %s: %s %d%% (%s, source %s)",
		studentID, result.Label, result.ProbabilityPercent, result.Confidence, result.Source)
	return &result, nil
}

func (p *placementService) Report(ctx context.Context, studentID uuid.UUID) (*report.PlacementReport, error) {
	student, err := p.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	resumes, err := p.docRepo.CountByType(studentID, models.FileTypeResume)
	if err != nil {
		return nil, err
	}
	certificates, err := p.docRepo.CountByType(studentID, models.FileTypeCertificate)
	if err != nil {
		return nil, err
	}
	results, err := p.results(studentID)
	if err != nil {
		return nil, err
	}

	modelResult := p.predictor.Predict(ctx, ProfileFromStudent(student, resumes > 0))

	r, err := p.reports.Generate(ctx, report.Input{
		Student:     StudentInfoFrom(student, int(certificates)),
		Prediction:  &modelResult,
		Assessments: results,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	log.Printf("📄 Report %s generated for %s (summary: %s)", r.ID, studentID, r.SummarySource)
	return r, nil
}

func (p *placementService) AnalyzeResume(ctx context.Context, studentID uuid.UUID) (*ResumeAnalysis, error) {
	if _, err := p.studentRepo.FindByID(studentID); err != nil {
		return nil, err
	}

	doc, err := p.docRepo.LatestByType(studentID, models.FileTypeResume)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, ErrNoResume
		}
		return nil, err
	}

	log.Println("📄 Parsing resume...")
	content, err := p.pdfParser.ExtractTextWithMetaData(doc.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	score, err := ats.Analyze(content.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to analyse resume: %w", err)
	}

	if err := p.studentRepo.UpdateATSScore(studentID, score.OverallScore); err != nil {
		return nil, err
	}

	log.Printf("✅ ATS score for %s: %d", studentID, score.OverallScore)
	return &ResumeAnalysis{DocumentID: doc.ID, PageCount: content.PageCount, Score: score}, nil
}

func (p *placementService) SubmitAssessment(ctx context.Context, studentID uuid.UUID, req *models.SubmitAssessmentRequest) (*AssessmentOutcome, error) {
	if _, err := p.studentRepo.FindByID(studentID); err != nil {
		return nil, err
	}

	result, err := p.catalog.Grade(req.SkillID, req.Answers, p.now())
	if err != nil {
		return nil, err
	}

	row := &models.SkillAssessment{
		StudentID:      studentID,
		SkillID:        result.SkillID,
		SkillName:      result.SkillName,
		Category:       result.Category,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		CompletedAt:    result.CompletedAt,
	}
	if err := p.assessmentRepo.Upsert(row); err != nil {
		return nil, err
	}

	return &AssessmentOutcome{Result: result, Suggestions: assessment.Suggestions(result.Score)}, nil
}

func (p *placementService) Assessments(ctx context.Context, studentID uuid.UUID) (*AssessmentSummary, error) {
	if _, err := p.studentRepo.FindByID(studentID); err != nil {
		return nil, err
	}

	results, err := p.results(studentID)
	if err != nil {
		return nil, err
	}

	return &AssessmentSummary{
		Results:      results,
		OverallScore: assessment.OverallScore(results),
		Completed:    len(results),
		Total:        len(p.catalog.Skills()),
	}, nil
}

func (p *placementService) Recommendations(ctx context.Context, studentID uuid.UUID) ([]assessment.Skill, error) {
	student, err := p.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	results, err := p.results(studentID)
	if err != nil {
		return nil, err
	}

	return p.catalog.Recommend(student.Technologies, results), nil
}

func (p *placementService) GapAnalysis(ctx context.Context, studentID uuid.UUID, role string) (*assessment.GapAnalysis, error) {
	if _, err := p.studentRepo.FindByID(studentID); err != nil {
		return nil, err
	}

	results, err := p.results(studentID)
	if err != nil {
		return nil, err
	}

	return p.catalog.GapAnalysis(role, results)
}

func (p *placementService) ModelInfo(ctx context.Context) (*prediction.TrainingInfo, error) {
	return p.predictor.ModelInfo(ctx)
}

func (p *placementService) Trends(ctx context.Context) (*prediction.IndustryTrends, error) {
	ds, err := p.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	trends := ds.Trends()
	return &trends, nil
}

func (p *placementService) results(studentID uuid.UUID) ([]assessment.Result, error) {
	rows, err := p.assessmentRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	out := make([]assessment.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, assessment.Result{
			SkillID:        row.SkillID,
			SkillName:      row.SkillName,
			Category:       row.Category,
			Score:          row.Score,
			CorrectCount:   row.CorrectCount,
			TotalQuestions: row.TotalQuestions,
			CompletedAt:    row.CompletedAt,
		})
	}
	return out, nil
}
