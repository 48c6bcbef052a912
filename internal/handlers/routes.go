package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Students    *StudentHandler
	Documents   *DocumentHandler
	Placement   *PlacementHandler
	Assessments *AssessmentHandler
	Admin       *AdminHandler
}

// Routes lists every endpoint for the index page.
var Routes = []string{
	"GET /api/v1/health",
	"POST /api/v1/students",
	"GET /api/v1/students/:id",
	"PUT /api/v1/students/:id",
	"POST /api/v1/students/:id/documents",
	"POST /api/v1/students/:id/ats",
	"GET /api/v1/students/:id/prediction",
	"GET /api/v1/students/:id/report",
	"POST /api/v1/students/:id/assessments",
	"GET /api/v1/students/:id/assessments",
	"GET /api/v1/students/:id/assessments/recommendations",
	"GET /api/v1/students/:id/assessments/gaps?role=",
	"GET /api/v1/skills",
	"GET /api/v1/skills/:skillId/questions",
	"GET /api/v1/trends",
	"GET /api/v1/model",
	"GET /api/v1/admin/stats",
}

// Register mounts the API on router, normally the /api/v1 group.
func Register(api fiber.Router, h Handlers) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	students := api.Group("/students")
	students.Post("/", h.Students.HandleCreate)
	students.Get("/:id", h.Students.HandleGet)
	students.Put("/:id", h.Students.HandleUpdate)
	students.Post("/:id/documents", h.Documents.HandleUpload)
	students.Post("/:id/ats", h.Placement.HandleATS)
	students.Get("/:id/prediction", h.Placement.HandlePrediction)
	students.Get("/:id/report", h.Placement.HandleReport)
	students.Post("/:id/assessments", h.Assessments.HandleSubmit)
	students.Get("/:id/assessments", h.Assessments.HandleList)
	students.Get("/:id/assessments/recommendations", h.Assessments.HandleRecommendations)
	students.Get("/:id/assessments/gaps", h.Assessments.HandleGaps)

	api.Get("/skills", h.Assessments.HandleListSkills)
	api.Get("/skills/:skillId/questions", h.Assessments.HandleQuestions)
	api.Get("/trends", h.Placement.HandleTrends)
	api.Get("/model", h.Placement.HandleModelInfo)
	api.Get("/admin/stats", h.Admin.HandleStats)
}
