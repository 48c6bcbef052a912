package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/models"
	"alfredoptarigan/placement-predictor/internal/prediction"
	"alfredoptarigan/placement-predictor/internal/report"
	"alfredoptarigan/placement-predictor/internal/repositories"
)

type fakeStudents struct {
	byID map[uuid.UUID]*models.Student
}

func (f *fakeStudents) Create(s *models.Student) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeStudents) FindByID(id uuid.UUID) (*models.Student, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudents) Update(s *models.Student) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeStudents) UpdateATSScore(id uuid.UUID, score int) error {
	s, ok := f.byID[id]
	if !ok {
		return repositories.ErrStudentNotFound
	}
	s.ATSScore = &score
	return nil
}

func (f *fakeStudents) Stats() (*models.AdminStats, error) { return &models.AdminStats{}, nil }

type fakeDocuments struct {
	docs []models.Document
}

func (f *fakeDocuments) Create(d *models.Document) error {
	f.docs = append(f.docs, *d)
	return nil
}

func (f *fakeDocuments) FindByID(id uuid.UUID) (*models.Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, repositories.ErrDocumentNotFound
}

func (f *fakeDocuments) FindByStudent(studentID uuid.UUID) ([]models.Document, error) {
	var out []models.Document
	for _, d := range f.docs {
		if d.StudentID == studentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocuments) LatestByType(studentID uuid.UUID, fileType string) (*models.Document, error) {
	for i := len(f.docs) - 1; i >= 0; i-- {
		if d := f.docs[i]; d.StudentID == studentID && d.FileType == fileType {
			return &d, nil
		}
	}
	return nil, repositories.ErrDocumentNotFound
}

func (f *fakeDocuments) CountByType(studentID uuid.UUID, fileType string) (int64, error) {
	var n int64
	for _, d := range f.docs {
		if d.StudentID == studentID && d.FileType == fileType {
			n++
		}
	}
	return n, nil
}

type fakeAssessments struct {
	rows map[string]models.SkillAssessment
}

func (f *fakeAssessments) Upsert(a *models.SkillAssessment) error {
	f.rows[a.StudentID.String()+"/"+a.SkillID] = *a
	return nil
}

func (f *fakeAssessments) FindByStudent(studentID uuid.UUID) ([]models.SkillAssessment, error) {
	var out []models.SkillAssessment
	for _, r := range f.rows {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePDF struct {
	text string
	err  error
}

func (f *fakePDF) ExtractText(path string) (string, error) {
	c, err := f.ExtractTextWithMetaData(path)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

func (f *fakePDF) ExtractTextWithMetaData(path string) (*PDFContent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &PDFContent{Text: f.text, PageCount: 1, FilePath: path}, nil
}

type placementFixture struct {
	svc         PlacementService
	students    *fakeStudents
	docs        *fakeDocuments
	assessments *fakeAssessments
	pdf         *fakePDF
	studentID   uuid.UUID
}

func newPlacementFixture(t *testing.T) *placementFixture {
	t.Helper()

	records := []prediction.DatasetRecord{
		{StudentID: "S1", CGPA: 8.8, Degree: "Computer Science Engineering", WorkExp: 1, Internships: 2, Projects: 4, Skills: "React, Python", Placed: "Yes", Salary: 900000},
		{StudentID: "S2", CGPA: 7.1, Degree: "Computer Science Engineering", Internships: 1, Projects: 2, Skills: "Java", Placed: "No"},
		{StudentID: "S3", CGPA: 6.5, Degree: "Mechanical Engineering", Projects: 1, Skills: "AutoCAD", Placed: "Yes", Salary: 350000},
	}
	datasets := prediction.DatasetSourceFunc(func(context.Context) (*prediction.Dataset, error) {
		return prediction.NewDataset(records), nil
	})
	modelSource := prediction.ModelSourceFunc(func(context.Context) (*prediction.ModelParameters, error) {
		return nil, prediction.ErrModelUnavailable
	})

	f := &placementFixture{
		students:    &fakeStudents{byID: map[uuid.UUID]*models.Student{}},
		docs:        &fakeDocuments{},
		assessments: &fakeAssessments{rows: map[string]models.SkillAssessment{}},
		pdf:         &fakePDF{text: "Contact: a@b.io\nExperience at Acme\nSkills: Python, SQL, Docker"},
	}

	student := &models.Student{
		Name:         "Kiran",
		Email:        "kiran@example.com",
		CGPA:         8.9,
		Branch:       "CSE",
		Experience:   "1 year as backend intern",
		Technologies: []string{"React", "Python"},
		Projects:     []string{"Chat app", "Budget tracker", "none"},
		Internships:  []string{"Acme", "Globex"},
	}
	require.NoError(t, f.students.Create(student))
	f.studentID = student.ID

	svc := NewPlacementService(
		f.students, f.docs, f.assessments, f.pdf,
		prediction.NewPredictor(modelSource, datasets, nil, nil),
		datasets,
		report.NewGenerator(nil, nil),
		assessment.DefaultCatalog(),
	).(*placementService)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func TestProfileFromStudent(t *testing.T) {
	p := ProfileFromStudent(&models.Student{
		CGPA:        12,
		Branch:      " IT ",
		Experience:  "2 years",
		Projects:    []string{"none", "Portfolio"},
		Internships: []string{"n/a"},
	}, true)

	assert.Equal(t, 10.0, p.CGPA)
	assert.Equal(t, "IT", p.Branch)
	assert.Equal(t, 2, p.WorkExpYears)
	assert.Equal(t, 1, p.ProjectCount)
	assert.Equal(t, 0, p.InternshipCount)
	assert.True(t, p.ResumeUploaded)
}

func TestPlacementService_Predict(t *testing.T) {
	f := newPlacementFixture(t)

	res, err := f.svc.Predict(context.Background(), f.studentID)
	require.NoError(t, err)
	assert.Equal(t, prediction.SourceFallback, res.Source)
	assert.Equal(t, prediction.LabelPlaced, res.Label)
	assert.LessOrEqual(t, res.Probability, 0.98)
	require.NotNil(t, res.Benchmarks)

	_, err = f.svc.Predict(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrStudentNotFound)
}

func TestPlacementService_Report(t *testing.T) {
	f := newPlacementFixture(t)
	require.NoError(t, f.docs.Create(&models.Document{ID: uuid.New(), StudentID: f.studentID, FileType: models.FileTypeCertificate}))
	require.NoError(t, f.docs.Create(&models.Document{ID: uuid.New(), StudentID: f.studentID, FileType: models.FileTypeCertificate}))

	r, err := f.svc.Report(context.Background(), f.studentID)
	require.NoError(t, err)

	assert.Equal(t, "Kiran", r.StudentInfo.Name)
	assert.Equal(t, 2, r.StudentInfo.Certifications)
	require.NotNil(t, r.ModelPrediction)
	assert.Equal(t, prediction.SourceFallback, r.ModelPrediction.Source)
	assert.Equal(t, report.SummarySourceTemplate, r.SummarySource)
}

func TestPlacementService_AnalyzeResume(t *testing.T) {
	f := newPlacementFixture(t)

	_, err := f.svc.AnalyzeResume(context.Background(), f.studentID)
	assert.ErrorIs(t, err, ErrNoResume)

	docID := uuid.New()
	require.NoError(t, f.docs.Create(&models.Document{ID: docID, StudentID: f.studentID, FileType: models.FileTypeResume, FilePath: "/tmp/resume.pdf"}))

	res, err := f.svc.AnalyzeResume(context.Background(), f.studentID)
	require.NoError(t, err)
	assert.Equal(t, docID, res.DocumentID)
	require.NotNil(t, f.students.byID[f.studentID].ATSScore)
	assert.Equal(t, res.Score.OverallScore, *f.students.byID[f.studentID].ATSScore)

	f.pdf.err = errors.New("corrupt")
	_, err = f.svc.AnalyzeResume(context.Background(), f.studentID)
	assert.ErrorContains(t, err, "failed to parse resume")
}

func TestPlacementService_Assessments(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()

	out, err := f.svc.SubmitAssessment(ctx, f.studentID, &models.SubmitAssessmentRequest{
		SkillID: "javascript",
		Answers: []int{2, 0, 0, 1, 0, 1, 1, 1, 1, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Result.Score)
	assert.NotEmpty(t, out.Suggestions)

	// a retake replaces the earlier result
	_, err = f.svc.SubmitAssessment(ctx, f.studentID, &models.SubmitAssessmentRequest{SkillID: "javascript", Answers: []int{0}})
	require.NoError(t, err)

	summary, err := f.svc.Assessments(ctx, f.studentID)
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, 0, summary.Results[0].Score)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 10, summary.Total)

	_, err = f.svc.SubmitAssessment(ctx, f.studentID, &models.SubmitAssessmentRequest{SkillID: "cobol", Answers: []int{0}})
	assert.ErrorIs(t, err, assessment.ErrSkillNotFound)

	recs, err := f.svc.Recommendations(ctx, f.studentID)
	require.NoError(t, err)
	for _, s := range recs {
		assert.NotEqual(t, "javascript", s.ID)
	}
}

func TestPlacementService_Trends(t *testing.T) {
	f := newPlacementFixture(t)

	trends, err := f.svc.Trends(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, trends.TopSkills)
	assert.Len(t, trends.SalaryDistribution, 5)
}

func TestPlacementService_GapAnalysis(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitAssessment(ctx, f.studentID, &models.SubmitAssessmentRequest{SkillID: "javascript", Answers: []int{0}})
	require.NoError(t, err)

	gap, err := f.svc.GapAnalysis(ctx, f.studentID, "fullstack-developer")
	require.NoError(t, err)
	require.Len(t, gap.Developing, 1)
	assert.Equal(t, "javascript", gap.Developing[0].ID)
	assert.Empty(t, gap.Strong)

	_, err = f.svc.GapAnalysis(ctx, f.studentID, "astronaut")
	assert.ErrorIs(t, err, assessment.ErrUnknownRole)

	_, err = f.svc.GapAnalysis(ctx, uuid.New(), "fullstack-developer")
	assert.ErrorIs(t, err, repositories.ErrStudentNotFound)
}

func TestPlacementService_ModelInfo(t *testing.T) {
	f := newPlacementFixture(t)

	_, err := f.svc.ModelInfo(context.Background())
	assert.ErrorIs(t, err, prediction.ErrModelUnavailable)
}
