package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinmap-service/internal/config"
	"github.com/pinmap-service/internal/pkg/logger"
	"github.com/pinmap-service/internal/repository/cache"
	"github.com/pinmap-service/internal/repository/postgres"
	redisrepo "github.com/pinmap-service/internal/repository/redis"
	"github.com/pinmap-service/internal/repository/regionfile"
	"github.com/pinmap-service/internal/usecase"
	"github.com/pinmap-service/internal/worker"
	"github.com/pinmap-service/internal/worker/votestream"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Pin Map Worker")

	if !cfg.Worker.Enabled {
		log.Warn("Worker is disabled in config (WORKER_ENABLED=false), exiting")
		return
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer healthCancel()

	if err := db.Health(healthCtx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(healthCtx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	pinRepo := postgres.NewPinRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisrepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	regionRepo, err := regionfile.Load(cfg.Regions.Path, log)
	if err != nil {
		log.Fatal("Failed to load regions", zap.Error(err))
	}

	regionUC := usecase.NewRegionUseCase(regionRepo, log)
	statsUC := usecase.NewStatsUseCase(
		pinRepo,
		cacheRepo,
		regionUC,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	statsWorker := votestream.NewStatsWorker(
		streamRepo,
		statsUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	manager := worker.NewManager(log)
	manager.Register(statsWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Workers started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down workers gracefully...")
	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Workers stopped successfully")
}
