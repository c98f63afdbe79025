package main

import (
	"context"
	stdlog "log"
	"time"

	"parcel-locker/internal/pkg/config"
	"parcel-locker/internal/pkg/dotenv"
	"parcel-locker/internal/pkg/postgres"
	"parcel-locker/pkg/logger"
	"parcel-locker/pkg/logger/zap_adapter"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var log logger.Logger = zapLogger

	loaded, err := dotenv.Load(".env")
	if err != nil {
		log.Error("failed to load .env file", logger.NewField("error", err))
		return
	}
	if !loaded {
		log.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Error("load config", logger.NewField("error", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		log.Error("database", logger.NewField("error", err))
		return
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, log, pool); err != nil {
		log.Error("migrate", logger.NewField("error", err))
		return
	}
}
