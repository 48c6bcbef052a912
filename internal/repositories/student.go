package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/placement-predictor/internal/models"
)

type StudentRepository interface {
	Create(student *models.Student) error
	FindByID(id uuid.UUID) (*models.Student, error)
	Update(student *models.Student) error
	UpdateATSScore(id uuid.UUID, score int) error
	Stats() (*models.AdminStats, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	if err := r.db.Create(student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *studentRepository) FindByID(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return &student, nil
}

func (r *studentRepository) Update(student *models.Student) error {
	result := r.db.Model(student).Select("*").Omit("id", "email", "created_at").Updates(student)
	if result.Error != nil {
		return fmt.Errorf("failed to update student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *studentRepository) UpdateATSScore(id uuid.UUID, score int) error {
	result := r.db.Model(&models.Student{}).
		Where("id = ?", id).
		Update("ats_score", score)
	if result.Error != nil {
		return fmt.Errorf("failed to update ATS score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

type branchCount struct {
	Branch string
	Count  int64
}

// Stats aggregates the whole store. Averages ignore missing values.
func (r *studentRepository) Stats() (*models.AdminStats, error) {
	stats := &models.AdminStats{StudentsByBranch: make(map[string]int64)}

	if err := r.db.Model(&models.Student{}).Count(&stats.TotalStudents).Error; err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if err := r.db.Model(&models.Student{}).Where("profile_completed = ?", true).Count(&stats.CompletedProfiles).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed profiles: %w", err)
	}
	if err := r.db.Model(&models.Student{}).Where("cgpa > 0").
		Select("COALESCE(AVG(cgpa), 0)").Scan(&stats.AverageCGPA).Error; err != nil {
		return nil, fmt.Errorf("failed to average cgpa: %w", err)
	}
	if err := r.db.Model(&models.Student{}).Where("ats_score IS NOT NULL").
		Select("COALESCE(AVG(ats_score), 0)").Scan(&stats.AverageATSScore).Error; err != nil {
		return nil, fmt.Errorf("failed to average ATS score: %w", err)
	}

	var branches []branchCount
	if err := r.db.Model(&models.Student{}).
		Select("branch, COUNT(*) AS count").
		Where("branch <> ''").
		Group("branch").
		Scan(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to group students by branch: %w", err)
	}
	for _, b := range branches {
		stats.StudentsByBranch[b.Branch] = b.Count
	}

	if err := r.db.Model(&models.Document{}).Where("file_type = ?", models.FileTypeResume).
		Distinct("student_id").Count(&stats.ResumesUploaded).Error; err != nil {
		return nil, fmt.Errorf("failed to count resumes: %w", err)
	}
	if err := r.db.Model(&models.SkillAssessment{}).
		Select("COALESCE(AVG(score), 0)").Scan(&stats.AverageAssessmentScore).Error; err != nil {
		return nil, fmt.Errorf("failed to average assessment scores: %w", err)
	}

	return stats, nil
}
