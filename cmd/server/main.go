// Command server runs the vehicle tax engine HTTP service: configuration,
// database and cache wiring, the pure engine and its default rule registry,
// and the gin router, with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/cache"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/config"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/handlers"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/jobs"
	appmw "github.com/tesseract-nexus/vehicle-tax-engine/internal/middleware"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/models"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/repository"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/rules"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	logger.Info("running database migrations")
	if err := db.AutoMigrate(&models.CalculationAuditRecord{}, &models.CalculationCacheEntry{}); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	var redisClient *cache.Client
	redisClient, err = cache.New(cache.Config{Host: cfg.RedisHost, Port: cfg.RedisPort, DB: cfg.RedisDB})
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, falling back to database-backed result cache")
		redisClient = nil
	}

	registry := rules.DefaultRegistry()
	dispatcher := engine.NewDispatcher(registry)

	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(db)

	taxService := services.NewTaxService(dispatcher, auditRepo, cacheRepo, redisClient, cfg.CacheTTL, logger)

	cleanupJob := jobs.NewCacheCleanupJob(cacheRepo, logger, 30*time.Minute)
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go cleanupJob.Start(jobCtx)

	taxHandler := handlers.NewTaxHandler(taxService)
	registryHandler := handlers.NewRegistryHandler(registry)
	healthHandler := handlers.NewHealthHandler(db)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(appmw.RequestID())
	router.Use(appmw.Logger(logger))
	router.Use(appmw.Recovery(logger))
	router.Use(appmw.SecurityHeaders())
	router.Use(appmw.CORS([]string{"*"}))

	router.GET("/health", healthHandler.Health)
	router.GET("/livez", healthHandler.Liveness)
	router.GET("/readyz", healthHandler.Readiness)

	api := router.Group("/api/v1")
	{
		api.POST("/tax/calculate", taxHandler.CalculateTax)
		api.GET("/audit/:stateCode", taxHandler.AuditHistory)
		api.GET("/states", registryHandler.ListStates)
		api.GET("/states/:code/rules", registryHandler.GetStateRules)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("vehicle tax engine starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	<-quit
	logger.Info("shutting down server")

	cancelJobs()
	cleanupJob.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis connection")
		}
	}

	logger.Info("server shutdown complete")
}
