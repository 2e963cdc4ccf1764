package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/osaa-analytics/unga-readout/pkg/validator"

	"github.com/osaa-analytics/unga-readout/internal/adapter/handler"
	"github.com/osaa-analytics/unga-readout/internal/adapter/repository"
	"github.com/osaa-analytics/unga-readout/internal/infrastructure/cache"
	"github.com/osaa-analytics/unga-readout/internal/infrastructure/database"
	analysisuse "github.com/osaa-analytics/unga-readout/internal/usecase/analysis"
	"github.com/osaa-analytics/unga-readout/internal/usecase/auth"
	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
	"github.com/osaa-analytics/unga-readout/internal/usecase/ingest"
	"github.com/osaa-analytics/unga-readout/internal/usecase/intent"
	"github.com/osaa-analytics/unga-readout/internal/usecase/search"
	pkgai "github.com/osaa-analytics/unga-readout/pkg/ai"
	"github.com/osaa-analytics/unga-readout/pkg/config"
	"github.com/osaa-analytics/unga-readout/pkg/jwt"
	"github.com/osaa-analytics/unga-readout/pkg/llm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-App-Password"},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Database
	log.Println("Connecting to database...")
	db, err := database.NewSQLiteDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.CloseDB(db)

	// AutoMigrate is a development convenience; production schema changes
	// go through sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Domain components
	classifier := classify.New()

	// Repositories
	speechRepo := repository.NewSpeechRepository(db, classifier)
	analysisRepo := repository.NewAnalysisRepository(db)
	userRepo := repository.NewUserRepository(db)

	// LLM and transcription clients
	llmClient := llm.NewClient(&cfg.LLM)
	var transcriber ingest.AudioTranscriber
	if cfg.Assembly.APIKey != "" {
		transcriber = pkgai.NewTranscriber(&cfg.Assembly)
	} else {
		log.Println("ASSEMBLYAI_API_KEY not set; audio uploads disabled")
	}

	// JWT manager
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Services
	authService := auth.NewService(userRepo, jwtManager, logger)
	analysisService := analysisuse.NewService(llmClient, analysisRepo, classifier, &cfg.LLM, logger)
	router := intent.NewRouter(classifier)
	searchService := search.NewService(router, speechRepo, analysisService, llmClient, &cfg.LLM, logger)
	extractor := ingest.NewExtractor(transcriber, cfg.Upload.MaxFileBytes)
	corpusLoader := ingest.NewCorpusLoader(speechRepo, classifier, llmClient, &cfg.LLM, logger)

	// Rate limit counters
	counters := cache.NewCounterStore()

	// Handlers
	authHandler := handler.NewAuth(authService, logger)
	adminHandler := handler.NewAdmin(authService, logger)
	analysisHandler := handler.NewAnalysis(analysisService, analysisRepo, extractor, logger)
	searchHandler := handler.NewSearch(searchService, logger)
	speechHandler := handler.NewSpeech(speechRepo, corpusLoader, logger)

	appRouter := handler.NewRouter(cfg, jwtManager, counters, authHandler, adminHandler, analysisHandler, searchHandler, speechHandler)
	appRouter.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		log.Printf("Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
