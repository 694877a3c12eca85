package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lgs-predict/internal/adapter"
	"lgs-predict/internal/adapter/similarity"
	"lgs-predict/internal/cache"
	"lgs-predict/internal/config"
	"lgs-predict/internal/corpus"
	"lgs-predict/internal/domain"
	"lgs-predict/internal/generation"
	"lgs-predict/internal/handler"
	"lgs-predict/internal/logger"
	"lgs-predict/internal/middleware"
	"lgs-predict/internal/repository"
	"lgs-predict/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/embeddings"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		// Log request details
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Load the training corpus and build the analyzer
	store := corpus.NewStore(cfg.Data.CorpusFile)
	if err := store.Load(); err != nil {
		appLogger.Fatal("Failed to load corpus", zap.String("path", cfg.Data.CorpusFile), zap.Error(err))
	}
	analyzer := corpus.NewAnalyzer(store)
	appLogger.Info("Corpus loaded",
		zap.String("path", cfg.Data.CorpusFile),
		zap.Int("questions", analyzer.TotalQuestions()))

	// Repository for generated questions
	repo, err := repository.NewQuestionRepository(cfg.Data.GeneratedFile, cfg.Repository.Strict)
	if err != nil {
		appLogger.Fatal("Failed to open question repository", zap.Error(err))
	}
	appLogger.Info("Question repository ready",
		zap.String("path", cfg.Data.GeneratedFile),
		zap.Int("stored", repo.Count()))

	// Gemini model behind the generator port
	ctx := context.Background()
	llm, err := generation.NewGoogleAIModel(ctx, cfg.Gemini)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	// Optional similarity searcher; absence degrades generation prompts,
	// never fatally.
	var searcher domain.SimilaritySearcher
	if cfg.Embedding.Source != "" {
		var embedder embeddings.Embedder
		switch cfg.Embedding.Source {
		case "ollama":
			appLogger.Info("Initializing Ollama embedder",
				zap.String("server_url", cfg.Embedding.OllamaServerURL),
				zap.String("model", cfg.Embedding.OllamaModel))
			embedder, err = similarity.NewOllamaEmbedder(cfg.Embedding.OllamaServerURL, cfg.Embedding.OllamaModel)
		case "openai":
			appLogger.Info("Initializing OpenAI embedder", zap.String("model", cfg.Embedding.OpenAIModel))
			embedder, err = similarity.NewOpenAIEmbedder(cfg.Embedding.OpenAIAPIKey, cfg.Embedding.OpenAIModel)
		default:
			appLogger.Warn("Unsupported embedding source, similarity search disabled",
				zap.String("source", cfg.Embedding.Source))
		}
		if err != nil {
			appLogger.Warn("Failed to create embedder, similarity search disabled", zap.Error(err))
		} else if embedder != nil {
			embeddingSearcher := similarity.NewEmbeddingSearcher(embedder)
			if err := embeddingSearcher.BuildIndex(ctx, store.Questions()); err != nil {
				appLogger.Warn("Failed to build similarity index, similarity search disabled", zap.Error(err))
			} else {
				searcher = embeddingSearcher
			}
		}
	}

	generator := generation.NewClient(llm, searcher, cfg.Gemini)

	// Optional Redis cache for trend forecasts
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Failed to connect to Redis, trend caching disabled", zap.Error(err))
		} else {
			appLogger.Info("Successfully connected to Redis")
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	// Orchestrator and HTTP surface
	predictionService := service.NewPredictionService(analyzer, generator, repo, cacheAdapter, cfg.Redis.TrendTTL)
	predictionHandler := handler.NewPredictionHandler(predictionService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api/v1")
	predictionHandler.RegisterRoutes(apiGroup)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
