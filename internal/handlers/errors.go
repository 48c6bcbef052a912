package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/ats"
	"alfredoptarigan/placement-predictor/internal/models"
	"alfredoptarigan/placement-predictor/internal/prediction"
	"alfredoptarigan/placement-predictor/internal/repositories"
	"alfredoptarigan/placement-predictor/internal/services"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrStudentNotFound),
		errors.Is(err, repositories.ErrDocumentNotFound),
		errors.Is(err, assessment.ErrSkillNotFound),
		errors.Is(err, services.ErrNoResume):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, assessment.ErrInvalidAnswers),
		errors.Is(err, assessment.ErrNoQuestions),
		errors.Is(err, assessment.ErrUnknownRole),
		errors.Is(err, services.ErrInvalidFileType),
		errors.Is(err, services.ErrNoPDFText),
		errors.Is(err, ats.ErrEmptyResume):
		return fiber.StatusBadRequest
	case errors.Is(err, prediction.ErrDatasetUnavailable),
		errors.Is(err, prediction.ErrModelUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "validation failed",
		"details": models.ValidationMessages(err),
	})
}

func studentIDParam(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// ErrorHandler renders errors that escape handlers as {"error","code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
