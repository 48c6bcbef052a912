package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the stored profile. List fields hold the free text the student
// typed, placeholders included; counts are derived when scoring.
type Student struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string    `gorm:"type:text;not null" json:"name"`
	Email            string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	CGPA             float64   `gorm:"type:decimal(4,2)" json:"cgpa"`
	Branch           string    `gorm:"type:text" json:"branch"`
	Experience       string    `gorm:"type:text" json:"experience"`
	Technologies     []string  `gorm:"serializer:json;type:jsonb" json:"technologies"`
	Projects         []string  `gorm:"serializer:json;type:jsonb" json:"projects"`
	Internships      []string  `gorm:"serializer:json;type:jsonb" json:"internships"`
	SoftSkills       *int      `json:"soft_skills,omitempty"`
	ATSScore         *int      `json:"ats_score,omitempty"`
	ProfileCompleted bool      `gorm:"not null;default:false" json:"profile_completed"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
