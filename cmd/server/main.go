package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/adapter/geocoder"
	natsadapter "github.com/jobee/jobee-api/internal/adapter/messaging/nats"
	"github.com/jobee/jobee-api/internal/adapter/repository/cache"
	"github.com/jobee/jobee-api/internal/adapter/repository/mongodb"
	"github.com/jobee/jobee-api/internal/adapter/storage/s3"
	"github.com/jobee/jobee-api/internal/auth"
	"github.com/jobee/jobee-api/internal/config"
	"github.com/jobee/jobee-api/internal/handler"
	jobusecase "github.com/jobee/jobee-api/internal/job/usecase"
	"github.com/jobee/jobee-api/internal/mailer"
	"github.com/jobee/jobee-api/internal/platform/logger"
	"github.com/jobee/jobee-api/internal/platform/metrics"
	"github.com/jobee/jobee-api/internal/router"
	userusecase "github.com/jobee/jobee-api/internal/user/usecase"
)

const serviceName = "jobee"

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	if err := mongoClient.Ping(context.Background(), readpref.Primary()); err != nil {
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// MinIO resume storage
	resumeStorage, err := s3.NewResumeStorage(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize resume storage", zap.Error(err))
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	// SMTP
	smtpMailer, err := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.SenderEmail,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	geoClient := geocoder.New(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey, appLogger)
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	metricsManager := metrics.NewMetricsManager(serviceName)

	// Repositories
	jobRepo := mongodb.NewJobRepository(db, appLogger)
	userRepo := mongodb.NewUserRepository(db, appLogger)
	jobCache := cache.NewJobCache(redisClient)

	// Usecases
	jobUsecase := jobusecase.NewJobUsecase(
		jobRepo, resumeStorage, geoClient, jobCache, publisher,
		cfg.Upload.MaxResumeSize, appLogger,
	)
	userUsecase := userusecase.NewUserUsecase(
		userRepo, jobRepo, resumeStorage, smtpMailer, jwtManager, publisher, appLogger,
	)

	// HTTP surface
	mux := router.New(router.Deps{
		Auth:    handler.NewAuthHandler(userUsecase, cfg.AppURL, appLogger),
		Users:   handler.NewUserHandler(userUsecase, appLogger),
		Jobs:    handler.NewJobHandler(jobUsecase, metricsManager, cfg.Upload.MaxResumeSize, appLogger),
		JWT:     jwtManager,
		Fetcher: userRepo,
		Metrics: metricsManager,
		Logger:  appLogger,
	})

	go func() {
		if err := metrics.StartMetricsServer(cfg.Metrics.Port, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		appLogger.Info("HTTP server starting", zap.String("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
