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

	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/config"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/handlers"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/middleware"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/repositories/mongodb"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/cache"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/database"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/storage"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logger
	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
		AppName:    cfg.App.Name,
		AppVersion: cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	mongoDB, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer mongoDB.Close()

	if err := database.NewMigrator(mongoDB.Database).Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	// Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache, appLogger, cfg.App.Name, 15*time.Minute)

	// Object storage for exported evidence documents
	storageProvider, err := newStorageProvider(cfg.Storage)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage provider")
	}

	// Repositories
	disputeRepo := mongodb.NewDisputeRepository(mongoDB.Database, cacheService)
	evidenceRepo := mongodb.NewEvidenceRepository(mongoDB.Database, cacheService)
	proposalRepo := mongodb.NewProposalRepository(mongoDB.Database, cacheService)

	// Services
	disputeService := services.NewDisputeService(disputeRepo, cfg.Mediation, appLogger)
	evidenceService := services.NewEvidenceService(evidenceRepo, disputeRepo, mongoDB, cfg.Mediation, appLogger)
	proposalService := services.NewProposalService(proposalRepo, disputeRepo, mongoDB, cfg.Mediation, appLogger)
	exportService := services.NewExportService(disputeRepo, evidenceRepo, proposalRepo, storageProvider, cfg.Mediation, appLogger)

	// Handlers
	h := &routes.Handlers{
		Dispute:  handlers.NewDisputeHandler(disputeService, appLogger),
		Evidence: handlers.NewEvidenceHandler(evidenceService, appLogger),
		Proposal: handlers.NewProposalHandler(proposalService, appLogger),
		Export:   handlers.NewExportHandler(exportService, appLogger),
	}

	// Router
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.RateLimit(cacheService, int64(cfg.Security.RateLimitPerMinute), time.Minute))

	routes.Setup(router, h, cfg.Security.JWTSecret)

	// Serve
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Infof("%s listening", utils.AppName)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}

func newStorageProvider(cfg *config.StorageConfig) (storage.StorageProvider, error) {
	switch cfg.Provider {
	case "aws", "s3":
		return storage.NewAWSS3Storage(cfg.AWS.Region, cfg.AWS.Bucket)
	case "gcp", "gcs":
		return storage.NewGCPStorage(cfg.GCP.Bucket, cfg.GCP.CredentialsFile)
	default:
		return storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
	}
}
