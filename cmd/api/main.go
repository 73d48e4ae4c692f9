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
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prepverse/answer-evaluator/internal/config"
	"prepverse/answer-evaluator/internal/handlers"
	"prepverse/answer-evaluator/internal/metrics"
	"prepverse/answer-evaluator/internal/qualitygate"
	"prepverse/answer-evaluator/internal/repositories"
	"prepverse/answer-evaluator/internal/services"
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
	attemptRepo := repositories.NewAttemptRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	gateRepo := repositories.NewGateReportRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	draftParser := services.NewDraftParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Register Prometheus collectors
	metrics.Init()

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(attemptRepo)
	log.Println("✅ Evaluator service initialized")

	// Initialize article pipeline
	articleService := services.NewArticleService(
		articleRepo,
		storageService,
		draftParser,
		geminiService,
		cfg.Worker.RetryMaxAttempts,
	)

	linkChecker := qualitygate.NewLinkChecker(qualitygate.CheckerConfig{
		Timeout:     cfg.Gate.LinkTimeout,
		Retries:     cfg.Gate.LinkRetries,
		Parallelism: cfg.Gate.LinkParallelism,
	})

	gateService := services.NewGateService(
		gateRepo,
		articleRepo,
		linkChecker,
		qualitygate.Config{
			PassThreshold: cfg.Gate.PassThreshold,
			MinWords:      cfg.Gate.MinWords,
			MaxWords:      cfg.Gate.MaxWords,
		},
		geminiService,
		qdrantService,
		float32(cfg.Gate.SimilarityThreshold),
	)
	log.Println("✅ Quality gate initialized")

	// Initialize worker
	worker := services.NewWorker(
		attemptRepo,
		gateRepo,
		evaluatorService,
		gateService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	evaluateHandler := handlers.NewEvaluateHandler(evaluatorService)
	attemptHandler := handlers.NewAttemptHandler(attemptRepo, worker)
	articleHandler := handlers.NewArticleHandler(
		articleRepo,
		gateRepo,
		articleService,
		worker,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Answer Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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

	// Synchronous evaluation
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)

	// Practice attempt lifecycle
	api.Post("/attempts", attemptHandler.HandleCreate)
	api.Get("/attempts/:id", attemptHandler.HandleGet)
	api.Post("/attempts/:id/record", attemptHandler.HandleRecord)
	api.Post("/attempts/:id/transcript", attemptHandler.HandleTranscript)
	api.Post("/attempts/:id/discard", attemptHandler.HandleDiscard)
	api.Post("/attempts/:id/submit", attemptHandler.HandleSubmit)
	api.Post("/attempts/:id/reset", attemptHandler.HandleReset)

	// Article drafts and the quality gate
	api.Post("/articles", articleHandler.HandleUpload)
	api.Get("/articles", articleHandler.HandleList)
	api.Post("/articles/generate", articleHandler.HandleGenerate)
	api.Post("/articles/:id/validate", articleHandler.HandleValidate)
	api.Get("/articles/:id/report", articleHandler.HandleGetReport)

	// Prometheus exposition
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Answer Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/evaluate",
				"POST /api/v1/attempts",
				"GET /api/v1/attempts/:id",
				"POST /api/v1/attempts/:id/record",
				"POST /api/v1/attempts/:id/transcript",
				"POST /api/v1/attempts/:id/discard",
				"POST /api/v1/attempts/:id/submit",
				"POST /api/v1/attempts/:id/reset",
				"POST /api/v1/articles",
				"GET /api/v1/articles",
				"POST /api/v1/articles/generate",
				"POST /api/v1/articles/:id/validate",
				"GET /api/v1/articles/:id/report",
				"GET /metrics",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
