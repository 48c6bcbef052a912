package models

import (
	"time"

	"github.com/google/uuid"
)

// SkillAssessment is the latest graded quiz per student and skill.
type SkillAssessment struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_skill" json:"student_id"`
	SkillID        string    `gorm:"type:text;not null;uniqueIndex:idx_student_skill" json:"skill_id"`
	SkillName      string    `gorm:"type:text" json:"skill_name"`
	Category       string    `gorm:"type:text" json:"category"`
	Score          int       `gorm:"not null" json:"score"`
	CorrectCount   int       `json:"correct_count"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

func (SkillAssessment) TableName() string {
	return "skill_assessments"
}

// AdminStats aggregates the profile store for the admin dashboard.
type AdminStats struct {
	TotalStudents          int64            `json:"total_students"`
	CompletedProfiles      int64            `json:"completed_profiles"`
	AverageCGPA            float64          `json:"average_cgpa"`
	StudentsByBranch       map[string]int64 `json:"students_by_branch"`
	ResumesUploaded        int64            `json:"resumes_uploaded"`
	AverageAssessmentScore float64          `json:"average_assessment_score"`
	AverageATSScore        float64          `json:"average_ats_score"`
}
