package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"apollohr/resume-screener/internal/config"
	"apollohr/resume-screener/internal/handlers"
	"apollohr/resume-screener/internal/logger"
	"apollohr/resume-screener/internal/repositories"
	"apollohr/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("config loaded", zap.String("env", cfg.Server.Env))

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository()

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	extractor := services.NewTextExtractor()

	credentials := services.NewClientCredentials(
		cfg.Apollo.TokenURL,
		cfg.Apollo.ClientID,
		cfg.Apollo.ClientSecret,
		cfg.Apollo.TokenTimeout,
	)

	llmClient := services.NewApolloClient(
		credentials,
		cfg.Apollo.APIURL,
		cfg.Apollo.Model,
		cfg.Apollo.Temperature,
		cfg.Apollo.MaxTokens,
		cfg.Apollo.CompletionTimeout,
	)

	analyzerService := services.NewAnalyzerService(
		llmClient,
		log,
		cfg.Analyzer.Concurrency,
	)
	log.Info("services initialized", zap.String("model", cfg.Apollo.Model))

	// Initialize Handlers
	sessionHandler := handlers.NewSessionHandler(sessionRepo)
	uploadHandler := handlers.NewUploadHandler(
		sessionRepo,
		storageService,
		extractor,
		cfg.Storage.MaxFileSize,
		log,
	)
	analyzeHandler := handlers.NewAnalyzeHandler(sessionRepo, analyzerService)
	interviewHandler := handlers.NewInterviewHandler(sessionRepo, analyzerService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
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

	// API endpoints
	api.Post("/sessions", sessionHandler.HandleCreate)
	api.Get("/sessions/:id", sessionHandler.HandleGet)
	api.Post("/sessions/:id/reset", sessionHandler.HandleReset)
	api.Delete("/sessions/:id", sessionHandler.HandleDelete)
	api.Post("/sessions/:id/documents", uploadHandler.HandleUpload)
	api.Post("/sessions/:id/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/sessions/:id/results", analyzeHandler.HandleGetResults)
	api.Get("/sessions/:id/comparison", analyzeHandler.HandleGetComparison)
	api.Post("/sessions/:id/interview", interviewHandler.HandleGenerate)
	api.Get("/sessions/:id/interview/:name", interviewHandler.HandleGet)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"POST /api/v1/sessions/:id/documents",
				"POST /api/v1/sessions/:id/analyze",
				"GET /api/v1/sessions/:id/results",
				"GET /api/v1/sessions/:id/comparison",
				"POST /api/v1/sessions/:id/interview",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
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
