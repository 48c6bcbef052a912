package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FileTypeResume      = "resume"
	FileTypeCertificate = "certificate"
)

type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID        uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FileType         string    `gorm:"type:text;not null" json:"file_type"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

func (d *Document) TableName() string {
	return "documents"
}
