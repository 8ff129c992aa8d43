package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/obra-api/docs" // Swagger docs
	"github.com/sjperalta/obra-api/internal/cache"
	"github.com/sjperalta/obra-api/internal/config"
	"github.com/sjperalta/obra-api/internal/database"
	"github.com/sjperalta/obra-api/internal/handlers"
	"github.com/sjperalta/obra-api/internal/jobs"
	"github.com/sjperalta/obra-api/internal/middleware"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/internal/services"
	"github.com/sjperalta/obra-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Obra API
// @version 1.0
// @description REST API for construction project administration: projects, units, clients, contracts and installment schedules
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		logger.Info("Database migrated")
	}

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, cfg)

	// Contract detail cache is optional; without Redis every read hits the database
	if cfg.RedisAddr != "" {
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		contractCache, err := cache.NewRedisStore(pingCtx, cfg.RedisAddr, "obra:")
		cancelPing()
		if err != nil {
			logger.Warn("Redis unavailable, contract cache disabled", "error", err)
		} else {
			defer contractCache.Close()
			svcs.Contract.UseCache(contractCache, cfg.ContractCacheTTL)
			logger.Info("Contract cache enabled", "ttl", cfg.ContractCacheTTL.String())
		}
	}

	scheduleJobs(worker, svcs, cfg)

	h := handlers.NewHandlers(svcs)
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health.Index)

		projects := api.Group("/projects")
		{
			projects.GET("", h.Project.Index)
			projects.POST("", h.Project.Create)
			projects.GET("/:id", h.Project.Show)
		}

		units := api.Group("/units")
		{
			units.GET("", h.Unit.Index)
			units.POST("", h.Unit.Create)
			units.GET("/:id", h.Unit.Show)
			units.POST("/:id/:event", h.Unit.Transition)
		}

		clients := api.Group("/clients")
		{
			clients.GET("", h.Client.Index)
			clients.POST("", h.Client.Create)
			clients.GET("/:id", h.Client.Show)
		}

		contracts := api.Group("/contracts")
		{
			contracts.GET("", h.Contract.Index)
			contracts.POST("", h.Contract.Create)
			contracts.GET("/:id", h.Contract.Show)
			contracts.GET("/:id/installments", h.Contract.Installments)
		}

		api.GET("/audits", h.Audit.Index)

		jobsGroup := api.Group("/jobs")
		{
			jobsGroup.GET("/status", h.Job.Status)
			jobsGroup.POST("/overdue-sweep", h.Job.SweepOverdue)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Flag pending installments whose due date has passed
	worker.ScheduleEveryImmediate(services.OverdueSweepJob, cfg.OverdueSweepInterval, svcs.Installment.SweepOverdue)

	logger.Info("Scheduled recurring jobs", "overdue_sweep_interval", cfg.OverdueSweepInterval.String())
}
