package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"mockmate/interview-api/internal/config"
	"mockmate/interview-api/internal/handlers"
	"mockmate/interview-api/internal/logger"
	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("env", cfg.Server.Env).Msg("config loaded")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	log.Info().Msg("database connected")

	docRepo := repositories.NewDocumentRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("failed to create upload directory")
	}

	pdfParser := services.NewPDFParserService()
	eventLog := services.NewEventLogService(cfg.Log.EventDir)

	// Load the prompt catalog once; it is read-only afterwards
	catalog, err := services.LoadPromptCatalog(cfg.Prompts.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load prompt catalog")
	}
	log.Info().Str("path", cfg.Prompts.Path).Msg("prompt catalog loaded")

	ctx := context.Background()

	// Initialize Gemini
	invoker, err := services.NewGeminiInvoker(ctx, cfg.Gemini.APIKey, cfg.Interview.ProviderTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini client")
	}
	log.Info().Str("model", cfg.Gemini.Model).Msg("gemini client initialized")

	interviewService := services.NewInterviewService(catalog, invoker, cfg.Gemini.Model, log)

	// Initialize Google Cloud speech clients
	gcpOpts := config.GCPClientOptions()

	ttsClient, err := texttospeech.NewClient(ctx, gcpOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize text-to-speech client")
	}
	defer ttsClient.Close()

	sttClient, err := speech.NewClient(ctx, gcpOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize speech-to-text client")
	}
	defer sttClient.Close()

	speechService := services.NewSpeechService(
		ttsClient,
		sttClient,
		cfg.TTS.AllowedVoices,
		cfg.TTS.DefaultVoice,
		cfg.Speech.SampleRateHertz,
		cfg.Speech.DefaultLanguage,
		log,
	)
	log.Info().Msg("speech services initialized")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(interviewService, cfg.Interview.MaxFeedbackCount)
	audioHandler := handlers.NewAudioHandler(speechService)
	resumeHandler := handlers.NewResumeHandler(docRepo, storageService, pdfParser, cfg.Storage.MaxFileSize)
	logsHandler := handlers.NewLogsHandler(eventLog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview API",
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
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	interview := api.Group("/interview")
	interview.Post("/generate-questions", interviewHandler.HandleGenerateQuestions)
	interview.Post("/evaluation", interviewHandler.HandleEvaluation)
	interview.Post("/detailed-feedback", interviewHandler.HandleDetailedFeedback)
	interview.Post("/text-to-speech", audioHandler.HandleTextToSpeech)
	interview.Post("/speech-to-text", audioHandler.HandleSpeechToText)
	interview.Post("/resume", resumeHandler.HandleUpload)
	interview.Get("/resume/:id", resumeHandler.HandleGet)

	api.Post("/logs", logsHandler.HandleCreateLog)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview API is running",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/interview/generate-questions",
				"POST /api/interview/evaluation",
				"POST /api/interview/detailed-feedback",
				"POST /api/interview/text-to-speech",
				"POST /api/interview/speech-to-text",
				"POST /api/interview/resume",
				"GET /api/interview/resume/:id",
				"POST /api/logs",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
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
