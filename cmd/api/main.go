package main

import (
	"context"
	"log"
	"time"

	"snapvault/config"
	"snapvault/internal/handler"
	appredis "snapvault/internal/redis"
	"snapvault/internal/repository"
	"snapvault/internal/server"
	"snapvault/internal/services"
	"snapvault/internal/storage"
	"snapvault/pkg/database"
	"snapvault/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	database.Connect(cfg)
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	s3Client, err := storage.NewClient(ctx, storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
		PresignTTL: time.Duration(cfg.PresignTTLSec) * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to create s3 client: %v", err)
	}

	redisClient := appredis.NewClient(appredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limitCfg := appredis.DefaultRateLimitConfig()
	limitCfg.AuthLimit = cfg.AuthRateLimit
	limitCfg.UploadLimit = cfg.UploadRateLimit
	limiter := appredis.NewRateLimiter(redisClient, limitCfg)

	userRepo := repository.NewUserRepository(database.DB)
	mediaRepo := repository.NewMediaRepository(database.DB)

	authService := services.NewAuthService(userRepo, cfg)
	mediaService := services.NewMediaService(mediaRepo, s3Client)
	uploadService := services.NewUploadService(mediaRepo, s3Client)

	handlers := &server.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Media:  handler.NewMediaHandler(mediaService),
		Upload: handler.NewUploadHandler(uploadService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
