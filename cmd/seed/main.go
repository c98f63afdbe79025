package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os/signal"
	"syscall"

	"github.com/avito-tech/go-transaction-manager/pgxv5"

	"parcel-locker/internal/app"
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

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	migrate := flag.Bool("migrate", true, "Apply migrations before seeding")
	flag.Parse()

	loaded, err := dotenv.Load(".env")
	if err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	if err := run(context.Background(), appLogger, cfg, *migrate); err != nil {
		mainLog.Error("seed failed", logger.NewField("error", err))
		return
	}
}

func run(ctx context.Context, log logger.Logger, cfg *config.Config, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	seeder, err := app.InitializeSeeder(log, pool, pgxv5.DefaultCtxGetter, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	report, err := seeder.Provision(ctx)
	if err != nil {
		return fmt.Errorf("provision: %w", err)
	}

	log.Info("network provisioned",
		logger.NewField("lockers", report.Lockers),
		logger.NewField("cabinets", report.Cabinets),
		logger.NewField("recipients", report.Recipients),
		logger.NewField("drivers", report.Drivers),
	)
	return nil
}
