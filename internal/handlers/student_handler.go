package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/placement-predictor/internal/models"
	"alfredoptarigan/placement-predictor/internal/repositories"
)

type StudentHandler struct {
	studentRepo repositories.StudentRepository
	docRepo     repositories.DocumentRepository
}

func NewStudentHandler(studentRepo repositories.StudentRepository, docRepo repositories.DocumentRepository) *StudentHandler {
	return &StudentHandler{
		studentRepo: studentRepo,
		docRepo:     docRepo,
	}
}

func (h *StudentHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	student := req.ToStudent()
	if err := h.studentRepo.Create(student); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func (h *StudentHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	student, err := h.studentRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	docs, err := h.docRepo.FindByStudent(id)
	if err != nil {
		return respondError(c, err)
	}
	if docs == nil {
		docs = []models.Document{}
	}

	return c.JSON(fiber.Map{
		"student":   student,
		"documents": docs,
	})
}

func (h *StudentHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	var req models.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	student, err := h.studentRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	req.Apply(student)
	if err := h.studentRepo.Update(student); err != nil {
		return respondError(c, err)
	}

	return c.JSON(student)
}
