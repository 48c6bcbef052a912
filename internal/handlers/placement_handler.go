package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/placement-predictor/internal/services"
)

type PlacementHandler struct {
	placement services.PlacementService
}

func NewPlacementHandler(placement services.PlacementService) *PlacementHandler {
	return &PlacementHandler{
		placement: placement,
	}
}

func (h *PlacementHandler) HandlePrediction(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	result, err := h.placement.Predict(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *PlacementHandler) HandleReport(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	r, err := h.placement.Report(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(r)
}

func (h *PlacementHandler) HandleATS(c *fiber.Ctx) error {
	id, ok := studentIDParam(c)
	if !ok {
		return badRequest(c, "Invalid student ID format")
	}

	analysis, err := h.placement.AnalyzeResume(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(analysis)
}

func (h *PlacementHandler) HandleTrends(c *fiber.Ctx) error {
	trends, err := h.placement.Trends(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(trends)
}

func (h *PlacementHandler) HandleModelInfo(c *fiber.Ctx) error {
	info, err := h.placement.ModelInfo(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(info)
}
