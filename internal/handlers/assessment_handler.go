package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/models"
	"alfredoptarigan/placement-predictor/internal/services"
)

type AssessmentHandler struct {
	catalog   *assessment.Catalog
	placement services.PlacementService
}

func NewAssessmentHandler(catalog *assessment.Catalog, placement services.PlacementService) *AssessmentHandler {
	return &AssessmentHandler{
		catalog:   catalog,
		placement: placement,
	}
}

func (h *AssessmentHandler) HandleListSkills(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": h.catalog.Categories(),
	})
}

// HandleQuestions serves a quiz without its answer key.
func (h *AssessmentHandler) HandleQuestions(c *fiber.Ctx) error {
	skillID := c.Params("skillId")

	skill, ok := h.catalog.Skill(skillID)
	if !ok {
		return respondError(c, fmt.Errorf("%w: %s", assessment.ErrSkillNotFound, skillID))
	}

	questions, err := h.catalog.Questions(skillID)
	if err != nil {
		return respondError(c, err)
	}

	public := make([]assessment.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}

	return c.JSON(fiber.Map{
		"skill":     skill,
		"questions": public,
	})
}

func (h *AssessmentHandler) HandleSubmit(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	var req models.SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	outcome, err := h.placement.SubmitAssessment(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(outcome)
}

func (h *AssessmentHandler) HandleList(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	summary, err := h.placement.Assessments(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(summary)
}

func (h *AssessmentHandler) HandleRecommendations(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	skills, err := h.placement.Recommendations(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"recommendations": skills,
	})
}

// HandleGaps compares the student's results with a role, taken from the
// "role" query parameter.
func (h *AssessmentHandler) HandleGaps(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	role := c.Query("role")
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role query parameter is required",
			"roles": assessment.Roles(),
		})
	}

	gap, err := h.placement.GapAnalysis(c.UserContext(), id, role)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(gap)
}
