package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"parcel-locker/internal/pkg/config"
	"parcel-locker/internal/pkg/postgres"
	"parcel-locker/pkg/logger/zap_adapter"
	"parcel-locker/pkg/querier"
	"parcel-locker/pkg/tx"
)

var (
	querierInstance *querier.Querier
	txManager       *tx.Manager
	querierOnce     sync.Once
)

func GetQuerier() *querier.Querier {
	querierOnce.Do(setup)
	return querierInstance
}

func GetTxManager() *tx.Manager {
	querierOnce.Do(setup)
	return txManager
}

func setup() {
	ctx := context.Background()

	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	// POSTGRES_* из Makefile, иначе поднимаем контейнер
	cfg := &config.Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
	if cfg.Host == "" {
		cfg, err = startContainer(ctx)
		if err != nil {
			log.Fatalf("failed to start postgres container: %v", err)
		}
	}

	connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
	if err != nil {
		panic(err)
	}

	if err := postgres.Migrate(ctx, zapLogger, connPool); err != nil {
		panic(err)
	}

	querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
	txManager = tx.New(connPool)
}

func startContainer(ctx context.Context) (*config.Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("parcel_locker"),
		tcpostgres.WithUsername("parcel"),
		tcpostgres.WithPassword("parcel"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, err
	}

	return &config.Database{
		Host:     host,
		Port:     port.Port(),
		User:     "parcel",
		Password: "parcel",
		DBName:   "parcel_locker",
		SSLMode:  "disable",
	}, nil
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if setupSql == "" {
		GetQuerier()
		return
	}

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE parcels, cabinets, lockers, drivers, customers, users RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
