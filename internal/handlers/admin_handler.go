package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/placement-predictor/internal/repositories"
)

type AdminHandler struct {
	studentRepo repositories.StudentRepository
}

func NewAdminHandler(studentRepo repositories.StudentRepository) *AdminHandler {
	return &AdminHandler{
		studentRepo: studentRepo,
	}
}

func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.studentRepo.Stats()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(stats)
}
