package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/placement-predictor/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
	FindByStudent(studentID uuid.UUID) ([]models.Document, error)
	LatestByType(studentID uuid.UUID, fileType string) (*models.Document, error)
	CountByType(studentID uuid.UUID, fileType string) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := d.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// FindByStudent implements DocumentRepository.
func (d *documentRepository) FindByStudent(studentID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := d.db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return docs, nil
}

// LatestByType implements DocumentRepository.
func (d *documentRepository) LatestByType(studentID uuid.UUID, fileType string) (*models.Document, error) {
	var doc models.Document
	err := d.db.
		Where("student_id = ? AND file_type = ?", studentID, fileType).
		Order("created_at DESC").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("failed to find %s document: %w", fileType, err)
	}

	return &doc, nil
}

// CountByType implements DocumentRepository.
func (d *documentRepository) CountByType(studentID uuid.UUID, fileType string) (int64, error) {
	var n int64
	if err := d.db.Model(&models.Document{}).
		Where("student_id = ? AND file_type = ?", studentID, fileType).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s documents: %w", fileType, err)
	}

	return n, nil
}
