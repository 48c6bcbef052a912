package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/bootstrap"
	"alfredoptarigan/placement-predictor/internal/config"
	"alfredoptarigan/placement-predictor/internal/handlers"
	"alfredoptarigan/placement-predictor/internal/repositories"
	"alfredoptarigan/placement-predictor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize prediction stack
	stack, err := bootstrap.NewPrediction(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	stack.Warm(ctx, cfg.Model.LoadTimeout)
	log.Println("✅ Predictor initialized")

	catalog := assessment.DefaultCatalog()
	reports, err := bootstrap.NewReportGenerator(ctx, cfg, catalog)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	placementService := services.NewPlacementService(
		studentRepo,
		docRepo,
		assessmentRepo,
		pdfParser,
		stack.Predictor,
		stack.Resources,
		reports,
		catalog,
	)
	log.Println("✅ Placement service initialized")

	// Initialize handlers
	h := handlers.Handlers{
		Students: handlers.NewStudentHandler(studentRepo, docRepo),
		Documents: handlers.NewDocumentHandler(
			studentRepo,
			docRepo,
			storageService,
			cfg.Storage.MaxFileSize,
		),
		Placement:   handlers.NewPlacementHandler(placementService),
		Assessments: handlers.NewAssessmentHandler(catalog, placementService),
		Admin:       handlers.NewAdminHandler(studentRepo),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Placement Predictor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	handlers.Register(app.Group("/api/v1"), h)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Placement Predictor API",
			"version":   "1.0.0",
			"endpoints": handlers.Routes,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
