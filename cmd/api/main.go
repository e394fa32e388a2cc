package main

import (
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

	"careersync/backend/internal/config"
	"careersync/backend/internal/handlers"
	"careersync/backend/internal/repositories"
	"careersync/backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize services
	pdfParser := services.NewPDFParserService()
	searchService := services.NewJobSearchService(cfg.Search)
	interviewService := services.NewInterviewService(sessionRepo, geminiService, cfg.Gemini.Timeout)
	analyzerService := services.NewResumeAnalyzerService(
		resumeRepo,
		geminiService,
		pdfParser,
		3,
		cfg.Gemini.Timeout,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize email transport and dispatcher
	mailer, err := services.NewMailer(cfg.Email)
	if err != nil {
		log.Fatalf("❌ Failed to initialize mailer: %v", err)
	}

	dispatcher := services.NewEmailDispatcher(
		mailer,
		cfg.Dispatcher.Concurrency,
		cfg.Dispatcher.QueueSize,
		cfg.Email.Timeout,
	)
	dispatcher.Start()
	log.Println("✅ Email dispatcher started successfully")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	jobsHandler := handlers.NewJobsHandler(searchService, analyzerService, pdfParser, jobRepo)
	resumeHandler := handlers.NewResumeHandler(analyzerService, resumeRepo, dispatcher)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CareerSync API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
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
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	interview := api.Group("/interview")
	interview.Post("/start", interviewHandler.HandleStart)
	interview.Post("/chat", interviewHandler.HandleChat)
	interview.Get("/history/:session_id", interviewHandler.HandleHistory)

	jobs := api.Group("/jobs")
	jobs.Get("/manual-search", jobsHandler.HandleManualSearch)
	jobs.Post("/search-by-resume", jobsHandler.HandleSearchByResume)
	jobs.Post("/save", jobsHandler.HandleSaveJob)
	jobs.Get("/saved/:user_email", jobsHandler.HandleGetSavedJobs)
	jobs.Delete("/saved/:job_id", jobsHandler.HandleDeleteSavedJob)

	resume := api.Group("/resume")
	resume.Post("/analyze", resumeHandler.HandleAnalyze)
	resume.Post("/send-email/:resume_id", resumeHandler.HandleSendEmail)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CareerSync Backend Running 🚀",
			"version": "1.0.0",
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		dispatcher.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
