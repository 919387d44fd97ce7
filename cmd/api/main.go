package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinmap-service/internal/config"
	httpDelivery "github.com/pinmap-service/internal/delivery/http"
	"github.com/pinmap-service/internal/delivery/http/handler"
	"github.com/pinmap-service/internal/pkg/logger"
	"github.com/pinmap-service/internal/repository/cache"
	"github.com/pinmap-service/internal/repository/postgres"
	redisrepo "github.com/pinmap-service/internal/repository/redis"
	"github.com/pinmap-service/internal/repository/regionfile"
	"github.com/pinmap-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Pin Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	pinRepo := postgres.NewPinRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	surveyRepo := postgres.NewSurveyRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisrepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	regionRepo, err := regionfile.Load(cfg.Regions.Path, log)
	if err != nil {
		log.Fatal("Failed to load regions", zap.Error(err))
	}

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	pinUC := usecase.NewPinUseCase(
		pinRepo,
		cacheRepo,
		streamRepo,
		log,
		cfg.Cache.PinsCacheTTL,
	)

	voteUC := usecase.NewVoteUseCase(
		voteRepo,
		cacheRepo,
		streamRepo,
		log,
	)

	regionUC := usecase.NewRegionUseCase(regionRepo, log)

	surveyUC := usecase.NewSurveyUseCase(surveyRepo, log)

	statsUC := usecase.NewStatsUseCase(
		pinRepo,
		cacheRepo,
		regionUC,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	pinHandler := handler.NewPinHandler(pinUC, log)
	voteHandler := handler.NewVoteHandler(voteUC, log)
	surveyHandler := handler.NewSurveyHandler(surveyUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		pinHandler,
		voteHandler,
		surveyHandler,
		statsHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
