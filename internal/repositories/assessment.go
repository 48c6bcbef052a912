package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/placement-predictor/internal/models"
)

type AssessmentRepository interface {
	Upsert(a *models.SkillAssessment) error
	FindByStudent(studentID uuid.UUID) ([]models.SkillAssessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Upsert stores a result, replacing any earlier attempt at the same skill.
func (r *assessmentRepository) Upsert(a *models.SkillAssessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "skill_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"skill_name", "category", "score", "correct_count", "total_questions", "completed_at", "updated_at",
		}),
	}).Create(a).Error
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepository) FindByStudent(studentID uuid.UUID) ([]models.SkillAssessment, error) {
	var out []models.SkillAssessment
	if err := r.db.Where("student_id = ?", studentID).Order("completed_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to find assessments: %w", err)
	}
	return out, nil
}
