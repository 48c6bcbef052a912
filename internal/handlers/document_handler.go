package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/placement-predictor/internal/models"
	"alfredoptarigan/placement-predictor/internal/repositories"
	"alfredoptarigan/placement-predictor/internal/services"
)

type DocumentHandler struct {
	studentRepo    repositories.StudentRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewDocumentHandler(
	studentRepo repositories.StudentRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *DocumentHandler {
	return &DocumentHandler{
		studentRepo:    studentRepo,
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload accepts multipart fields "resume" and/or "certificate".
func (h *DocumentHandler) HandleUpload(c *fiber.Ctx) error {
	studentID, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}
	if _, err := h.studentRepo.FindByID(studentID); err != nil {
		return respondError(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "failed to parse multipart form")
	}

	var responses []models.UploadResponse
	for _, fileType := range []string{models.FileTypeResume, models.FileTypeCertificate} {
		files, exists := form.File[fileType]
		if !exists || len(files) == 0 {
			continue
		}
		file := files[0]

		if file.Size > h.maxFileSize {
			return badRequest(c, fmt.Sprintf("%s file too large. Max size: %d bytes", fileType, h.maxFileSize))
		}

		filename, filePath, err := h.storageService.SaveFile(file, fileType)
		if err != nil {
			return respondError(c, err)
		}

		doc := models.Document{
			ID:               uuid.New(),
			StudentID:        studentID,
			Filename:         filename,
			OriginalFileName: file.Filename,
			FileType:         fileType,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.docRepo.Create(&doc); err != nil {
			if delErr := h.storageService.DeleteFile(filename); delErr != nil {
				log.Printf("⚠️ Failed to clean up %s: %v", filename, delErr)
			}
			return respondError(c, fmt.Errorf("failed to save %s document record: %w", fileType, err))
		}

		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			FileType:     doc.FileType,
		})
	}

	if len(responses) == 0 {
		return badRequest(c, "No valid files uploaded. Please upload 'resume' (PDF) and/or 'certificate' (PDF, PNG or JPG).")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}
