package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os/signal"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/redis/go-redis/v9"

	"parcel-locker/internal/app"
	"parcel-locker/internal/gateway/kafka/notification"
	"parcel-locker/internal/handlers/cron/injection"
	"parcel-locker/internal/pkg/config"
	"parcel-locker/internal/pkg/dotenv"
	"parcel-locker/internal/pkg/kafka"
	"parcel-locker/internal/pkg/postgres"
	"parcel-locker/internal/pkg/redislock"
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

	mainLog.Info("starting injector")

	once := flag.Bool("once", false, "Run injection once and exit, ignoring INJECTION_SCHEDULE")
	runTimeout := flag.Duration("timeout", 10*time.Minute, "Upper bound for a single injection run")
	flag.Parse()

	loaded, err := dotenv.Load(".env")
	if err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}
	if *once {
		cfg.Injection.Schedule = ""
	}

	err = run(context.Background(), appLogger, cfg, *runTimeout)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

func run(ctx context.Context, log logger.Logger, cfg *config.Config, runTimeout time.Duration) error {
	const shutdownPeriod = 30 * time.Second

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	producer, err := kafka.NewAsyncProducer(ctx, log, &cfg.Kafka, cfg.Kafka.BrokerList())
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	notifier := notification.New(log, producer, cfg.Kafka.Topics.Notifications)
	defer notifier.Close()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redislock.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				runLog.Error("failed to close redis client", logger.NewField("error", err))
			}
		}()
	}

	injectorApp, err := app.InitializeInjector(ctx, log, pool, pgxv5.DefaultCtxGetter, notifier, redisClient, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	job := injection.New(log, injectorApp.Injection, runTimeout)

	if cfg.Injection.Schedule == "" {
		_, err := job.RunOnce(ctx)
		return err
	}

	if err := job.Start(ctx, cfg.Injection.Schedule); err != nil {
		return fmt.Errorf("injection job: %w", err)
	}

	<-ctx.Done()
	runLog.Info("Shutdown signal received")

	// ctx уже отменён
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	job.Stop(shutdownCtx)

	runLog.Info("Injector stopped")
	return nil
}
