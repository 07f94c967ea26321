// @title Quiz Forge API
// @version 1.0
// @description AI-assisted multiple-choice quiz authoring and timed quiz attempts.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/document"
	"quiz-forge/internal/adapter/event"
	"quiz-forge/internal/adapter/textgen"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/job"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	_ "quiz-forge/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database and bring the schema up to date
	db, err := database.Open(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db.DB, cfg.DB.Driver, cfg.DB.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis backs the generation cache; the API keeps working without it
	var appCache domain.Cache
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, generation cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		appCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	}

	generator, err := textgen.NewFromConfig(cfg.LLM, cfg.Generation)
	if err != nil {
		appLogger.Fatal("Failed to create text generator", zap.Error(err))
	}

	var publisher domain.EventPublisher = event.NoopPublisher{}
	if cfg.AMQP.Enabled {
		amqpPublisher, err := event.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			appLogger.Fatal("Failed to connect to AMQP broker", zap.Error(err))
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	// Initialize repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)
	documentRepository := repository.NewSQLXDocumentRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	clock := service.SystemClock{}
	authService, err := service.NewAuthService(userRepository, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	quizService := service.NewQuizService(quizRepository, attemptRepository, userRepository, txManager, clock)
	generationService := service.NewGenerationService(generator, appCache, quizRepository, documentRepository,
		txManager, publisher, cfg.Generation, clock)
	attemptService := service.NewAttemptService(quizRepository, attemptRepository, txManager, publisher,
		service.NewAttemptTimers(), clock)
	documentService := service.NewDocumentService(documentRepository, document.NewExtractor(), generator,
		cfg.Generation.MaxContentChars, clock)

	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	if err := attemptService.RestoreTimers(restoreCtx); err != nil {
		appLogger.Error("Failed to restore attempt timers", zap.Error(err))
	}
	cancelRestore()

	scheduler := job.NewScheduler()
	if err := scheduler.AddExpireAttempts(cfg.Jobs.ExpireAttemptsSpec, attemptService); err != nil {
		appLogger.Fatal("Failed to schedule jobs", zap.Error(err))
	}
	scheduler.Start()
	appLogger.Info("Scheduled expire-attempts job", zap.String("spec", cfg.Jobs.ExpireAttemptsSpec))

	// Initialize handlers
	validator := validation.NewValidator()
	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, validator),
		Quiz:       handler.NewQuizHandler(quizService, generationService, validator),
		Attempt:    handler.NewAttemptHandler(attemptService, quizService, validator),
		Document:   handler.NewDocumentHandler(documentService, generationService, validator),
		Generation: handler.NewGenerationHandler(generationService, validator),
		Health:     handler.NewHealthHandler(db, appCache),
	}

	app := fiber.New(fiber.Config{
		AppName:      "Quiz Forge",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handler.RegisterRoutes(app, handlers, authService, cfg.RateLimit)

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(ctx)
	// pending expiries are picked up again by RestoreTimers on the next start
	attemptService.Shutdown()
	appLogger.Info("Server exited gracefully")
}
