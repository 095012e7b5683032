// @title Civic Quiz Content API
// @version 1.0
// @description Extracts, repairs and scores civic quiz content produced by language models.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "civic-quiz/cmd/api/docs"
	"civic-quiz/internal/adapter"
	"civic-quiz/internal/adapter/quizgen"
	"civic-quiz/internal/cache"
	"civic-quiz/internal/config"
	"civic-quiz/internal/contentparse"
	"civic-quiz/internal/database"
	"civic-quiz/internal/domain"
	"civic-quiz/internal/handler"
	"civic-quiz/internal/logger"
	"civic-quiz/internal/middleware"
	"civic-quiz/internal/repository"
	"civic-quiz/internal/service"
)

const maxBodyBytes = 2 << 20

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	model, err := quizgen.NewModel(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	generator := quizgen.NewLLMQuizGenerator(model, cfg.LLM.Temperature, cfg.LLM.Timeout, appLogger.Named("quizgen"))
	appLogger.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	database.Configure(db, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.ConnMaxLifetime)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)

	healthChecks := map[string]handler.Pinger{"database": db}

	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, parse results will not be cached", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		healthChecks["cache"] = handler.PingFunc(cacheAdapter.Ping)
		appLogger.Info("Successfully connected to Redis")
	}

	parseCache := service.NewParseCache(cacheAdapter,
		config.ParseTTLStringOrDefault(cfg.CacheTTLs.ParsedContent, service.DefaultParseCacheTTL),
		appLogger.Named("parse_cache"))
	parser := contentparse.NewParser(contentparse.WithLogger(appLogger.Named("contentparse")))
	contentService := service.NewContentService(parser, parseCache, generator, questionRepository, cfg.Generation, appLogger.Named("content"))

	contentHandler := handler.NewContentHandler(contentService)
	healthHandler := handler.NewHealthHandler(healthChecks)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.WriteTimeout,
		BodyLimit:    maxBodyBytes,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")
	contentHandler.RegisterRoutes(api, validationMiddleware.ValidateBatchID())

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
