package app

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"parcel-locker/internal/handlers/kafka-consumer/driver_progress"
	"parcel-locker/internal/handlers/rest/assignment_run_post"
	"parcel-locker/internal/handlers/rest/cabinet_parcel_get"
	"parcel-locker/internal/handlers/rest/locker_occupancy_get"
	"parcel-locker/internal/handlers/rest/lockers_nearest_get"
	"parcel-locker/internal/handlers/rest/parcel_cancel_post"
	"parcel-locker/internal/handlers/rest/parcel_dropoff_post"
	"parcel-locker/internal/handlers/rest/parcel_get"
	"parcel-locker/internal/handlers/rest/parcel_pickup_post"
	"parcel-locker/internal/handlers/rest/parcel_post"
	"parcel-locker/internal/handlers/rest/parcel_progress_post"
	"parcel-locker/internal/handlers/rest/parcel_recipient_code_post"
	"parcel-locker/internal/handlers/tasks/batch_assignment"
	codeExpiryTask "parcel-locker/internal/handlers/tasks/code_expiry"
	"parcel-locker/internal/pkg/config"
	"parcel-locker/internal/pkg/factory/code_expiry"
	"parcel-locker/internal/pkg/metrics"
	"parcel-locker/internal/pkg/redislock"

	cabinetRepo "parcel-locker/internal/repository/cabinet"
	customerRepo "parcel-locker/internal/repository/customer"
	driverRepo "parcel-locker/internal/repository/driver"
	lockerRepo "parcel-locker/internal/repository/locker"
	parcelRepo "parcel-locker/internal/repository/parcel"

	"parcel-locker/internal/service/assignment"
	"parcel-locker/internal/service/injection"
	parcelService "parcel-locker/internal/service/parcel"
	"parcel-locker/internal/service/progress"
	"parcel-locker/internal/service/provisioning"
	"parcel-locker/internal/service/txcode"

	"parcel-locker/pkg/background"
	"parcel-locker/pkg/logger"
	"parcel-locker/pkg/querier"
	"parcel-locker/pkg/retrier"
	"parcel-locker/pkg/retrier/backoff_adapter"
	"parcel-locker/pkg/tx"
)

type (
	ServiceParcel interface {
		parcel_post.Service
		parcel_get.Service
		parcel_dropoff_post.Service
		parcel_pickup_post.Service
		parcel_cancel_post.Service
		parcel_recipient_code_post.Service
		cabinet_parcel_get.Service
	}

	ServiceProgress interface {
		parcel_progress_post.Service
	}

	ServiceLockers interface {
		lockers_nearest_get.Service
	}

	ServiceCabinets interface {
		locker_occupancy_get.Service
	}

	ServiceAssignment interface {
		assignment_run_post.Service
	}
)

type Application struct {
	ServiceParcel     ServiceParcel
	ServiceProgress   ServiceProgress
	ServiceLockers    ServiceLockers
	ServiceCabinets   ServiceCabinets
	ServiceAssignment ServiceAssignment
	BackgroundWorkers *background.Worker
}

type KafkaWorkerApp struct {
	DriverProgressHandler *driver_progress.Handler
}

type InjectorApp struct {
	Injection *injection.Service
}

const (
	defaultInjectionAttempts  = 3
	defaultInjectionBaseDelay = time.Second
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool, tx.WithIsoLevel(pgx.ReadCommitted))
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideLockerRepository(q *querier.Querier) *lockerRepo.Repository {
	return lockerRepo.New(q)
}

func provideCabinetRepository(q *querier.Querier) *cabinetRepo.Repository {
	return cabinetRepo.New(q)
}

func provideCustomerRepository(q *querier.Querier) *customerRepo.Repository {
	return customerRepo.New(q)
}

func provideDriverRepository(q *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(q)
}

func provideParcelRepository(q *querier.Querier) *parcelRepo.Repository {
	return parcelRepo.New(q)
}

func provideCodeExpiryFactory(cfg *config.Config) *code_expiry.CodeExpiryFactory {
	return code_expiry.New(cfg.Codes.SenderTTL, cfg.Codes.RecipientTTL)
}

func provideCodeManager(repository txcode.Repository, expiryFactory txcode.CodeExpiryFactory) *txcode.Manager {
	return txcode.New(repository, expiryFactory, nil)
}

func provideParcelService(
	log logger.Logger,
	repository parcelService.Repository,
	customers parcelService.CustomerRepository,
	lockers parcelService.LockerRepository,
	finder parcelService.LockerFinder,
	allocator parcelService.CabinetAllocator,
	codes parcelService.CodeManager,
	notifier parcelService.Notifier,
	txManager parcelService.TxManager,
) *parcelService.Service {
	return parcelService.New(log, repository, customers, lockers, finder, allocator, codes, notifier, txManager)
}

// provideRunLock без Redis прогоны исключают друг друга только внутри процесса.
func provideRunLock(redisClient *redis.Client, cfg *config.Config) assignment.RunLock {
	if redisClient == nil {
		return nil
	}
	return redislock.New(redisClient, cfg.Redis.LockKey, cfg.Redis.LockTTL)
}

func provideScheduler(
	log logger.Logger,
	repository assignment.Repository,
	drivers assignment.DriverRepository,
	machine assignment.ParcelMachine,
	lock assignment.RunLock,
	cfg *config.Config,
) *assignment.Scheduler {
	return assignment.New(log, repository, drivers, machine, lock, assignment.Config{
		BatchSize:      cfg.Assignment.BatchSize,
		DriverCapacity: cfg.Assignment.DriverCapacity,
	})
}

func provideBatchAssignmentTask(log logger.Logger, scheduler *assignment.Scheduler, cfg *config.Config) *batch_assignment.BatchAssignment {
	return batch_assignment.NewBatchAssignment(log, scheduler, cfg.Tasks.BatchAssignmentCooldown)
}

func provideCodeExpiryTask(log logger.Logger, service *parcelService.Service, cfg *config.Config) *codeExpiryTask.CodeExpiry {
	return codeExpiryTask.NewCodeExpiry(log, service, cfg.Tasks.CodeExpiryInterval)
}

func provideTaskList(
	batchAssignment *batch_assignment.BatchAssignment,
	codeExpiry *codeExpiryTask.CodeExpiry,
) []background.Task {
	return []background.Task{batchAssignment, codeExpiry}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

func provideDriverProgressRetrier() retrier.Retrier {
	return backoff_adapter.New(retrier.Config{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  10 * time.Second,
		Randomization:   0.5,
		Multiplier:      2,
		MaxAttempts:     5,
		ShouldRetry:     parcelService.IsTransient,
		Notify:          metrics.RetryNotify("driver_progress"),
	})
}

func provideDriverProgressHandler(
	log logger.Logger,
	service *progress.Service,
	r retrier.Retrier,
	cfg *config.Config,
) *driver_progress.Handler {
	return driver_progress.New(log, service, r, cfg.Kafka.Handlers.DriverProgress.ProcessTimeout)
}

// provideInjectionRetrier задержка растёт как base, 2*base, 4*base.
func provideInjectionRetrier(cfg *config.Config) retrier.Retrier {
	attempts := cfg.Injection.Attempts
	if attempts <= 0 {
		attempts = defaultInjectionAttempts
	}
	delay := cfg.Injection.BaseDelay
	if delay <= 0 {
		delay = defaultInjectionBaseDelay
	}
	return backoff_adapter.New(retrier.Config{
		InitialInterval: delay,
		MaxInterval:     delay << attempts,
		Multiplier:      2,
		MaxAttempts:     uint64(attempts),
		ShouldRetry:     injection.IsTransient,
		Notify:          metrics.RetryNotify("injection"),
	})
}

func provideInjectionService(
	log logger.Logger,
	customers injection.CustomerRepository,
	finder injection.LockerFinder,
	parcels injection.ParcelService,
	scheduler injection.Scheduler,
	r retrier.Retrier,
	cfg *config.Config,
) (*injection.Service, error) {
	return injection.New(log, customers, finder, parcels, scheduler, r, injection.Config{
		Cities:           cfg.Injection.Cities,
		CustomersPerPage: cfg.Injection.CustomersPerPage,
	})
}

func provideProvisioningService(
	log logger.Logger,
	lockers provisioning.LockerRepository,
	customers provisioning.CustomerRepository,
	drivers provisioning.DriverRepository,
	cfg *config.Config,
) *provisioning.Service {
	return provisioning.New(log, lockers, customers, drivers, provisioning.Config{
		Lockers:           cfg.Provisioning.Lockers,
		CabinetsPerLocker: cfg.Provisioning.CabinetsPerLocker,
		RadiusMeters:      cfg.Provisioning.RadiusMeters,
		DriversPerCity:    cfg.Provisioning.DriversPerCity,
	})
}
