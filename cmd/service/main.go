package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	application "parcel-locker/internal/app"
	"parcel-locker/internal/gateway/kafka/notification"
	"parcel-locker/internal/handlers/rest/assignment_run_post"
	"parcel-locker/internal/handlers/rest/cabinet_parcel_get"
	"parcel-locker/internal/handlers/rest/healthcheck_head"
	"parcel-locker/internal/handlers/rest/locker_occupancy_get"
	"parcel-locker/internal/handlers/rest/lockers_nearest_get"
	"parcel-locker/internal/handlers/rest/parcel_cancel_post"
	"parcel-locker/internal/handlers/rest/parcel_dropoff_post"
	"parcel-locker/internal/handlers/rest/parcel_get"
	"parcel-locker/internal/handlers/rest/parcel_pickup_post"
	"parcel-locker/internal/handlers/rest/parcel_post"
	"parcel-locker/internal/handlers/rest/parcel_progress_post"
	"parcel-locker/internal/handlers/rest/parcel_recipient_code_post"
	"parcel-locker/internal/handlers/rest/ping_get"
	"parcel-locker/internal/pkg/config"
	"parcel-locker/internal/pkg/dotenv"
	"parcel-locker/internal/pkg/kafka"
	metrics_system "parcel-locker/internal/pkg/metrics"
	"parcel-locker/internal/pkg/middlewares/graceful_shutdown"
	"parcel-locker/internal/pkg/middlewares/metrics"
	"parcel-locker/internal/pkg/middlewares/rate_limiter"
	"parcel-locker/internal/pkg/middlewares/timeout"
	"parcel-locker/internal/pkg/postgres"
	"parcel-locker/internal/pkg/redislock"
	"parcel-locker/pkg/logger"
	"parcel-locker/pkg/logger/zap_adapter"
	"parcel-locker/pkg/token_bucket"
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

	mainLog.Info("starting parcel-locker application")

	portFlag := flag.String("port", "", "Server port (overrides PORT environment variable)")
	flag.Parse()

	loaded, err := dotenv.Load(".env")
	if err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}
	if err := dotenv.Override(map[string]string{"PORT": *portFlag}); err != nil {
		mainLog.Error("apply flags", logger.NewField("error", err))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

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

	// без Redis блокировка прогонов назначения действует только внутри процесса
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
	} else {
		runLog.Warn("REDIS_URL is empty, assignment runs are serialized per process only")
	}

	// фоновые задачи живут до отмены ctx
	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, notifier, redisClient, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemCollector(ctx, 0)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofMux := http.NewServeMux()
		pprofMux.Handle("/debug/pprof/", http.DefaultServeMux)

		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if !businessApp.BackgroundWorkers.WaitTimeout(shutdownHardPeriod) {
		runLog.Warn("background tasks did not finish in time")
	}
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, db healthcheck_head.Pinger, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, db)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, ping_get.SystemClock{})).Methods("GET")

	router.Handle("/parcel", parcel_post.New(log, app.ServiceParcel)).Methods("POST")
	router.Handle("/parcel/{id}", parcel_get.New(log, app.ServiceParcel)).Methods("GET")
	router.Handle("/parcel/{id}/dropoff", parcel_dropoff_post.New(log, app.ServiceParcel)).Methods("POST")
	router.Handle("/parcel/{id}/pickup", parcel_pickup_post.New(log, app.ServiceParcel)).Methods("POST")
	router.Handle("/parcel/{id}/cancel", parcel_cancel_post.New(log, app.ServiceParcel)).Methods("POST")
	router.Handle("/parcel/{id}/recipient-code", parcel_recipient_code_post.New(log, app.ServiceParcel)).Methods("POST")
	router.Handle("/parcel/{id}/progress", parcel_progress_post.New(log, app.ServiceProgress)).Methods("POST")
	router.Handle("/cabinet/{id}/parcel", cabinet_parcel_get.New(log, app.ServiceParcel)).Methods("GET")

	router.Handle("/lockers/nearest", lockers_nearest_get.New(log, app.ServiceLockers)).Methods("GET")
	router.Handle("/locker/{id}/occupancy", locker_occupancy_get.New(log, app.ServiceCabinets)).Methods("GET")

	router.Handle("/assignment/run", assignment_run_post.New(log, app.ServiceAssignment)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
