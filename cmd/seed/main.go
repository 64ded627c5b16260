package main

import (
	"log"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/logger"
	"taskboard/internal/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	pool, err := database.NewDatabasePool(database.PoolConfigFromConfig(cfg, zlog))
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Migrate(); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	result, err := services.Seed(pool.DB)
	if err != nil {
		zlog.Fatal("seed failed", zap.Error(err))
	}

	zlog.Info("seed completed",
		zap.Int64("users_inserted", result.Users),
		zap.Int64("tasks_inserted", result.Tasks),
	)
}
