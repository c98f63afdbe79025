//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"parcel-locker/internal/gateway/kafka/notification"
	"parcel-locker/internal/pkg/config"
	"parcel-locker/internal/pkg/factory/code_expiry"
	"parcel-locker/internal/pkg/factory/progress_handle"

	cabinetRepo "parcel-locker/internal/repository/cabinet"
	customerRepo "parcel-locker/internal/repository/customer"
	driverRepo "parcel-locker/internal/repository/driver"
	lockerRepo "parcel-locker/internal/repository/locker"
	parcelRepo "parcel-locker/internal/repository/parcel"

	"parcel-locker/internal/service/assignment"
	cabinetService "parcel-locker/internal/service/cabinet"
	"parcel-locker/internal/service/geo"
	"parcel-locker/internal/service/injection"
	parcelService "parcel-locker/internal/service/parcel"
	"parcel-locker/internal/service/progress"
	"parcel-locker/internal/service/provisioning"
	"parcel-locker/internal/service/txcode"

	"parcel-locker/pkg/logger"
	"parcel-locker/pkg/tx"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	notifier *notification.Gateway,
	redisClient *redis.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		coreSet,
		schedulerSet,
		progressSet,

		provideBatchAssignmentTask,
		provideCodeExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceParcel), new(*parcelService.Service)),
		wire.Bind(new(ServiceProgress), new(*progress.Service)),
		wire.Bind(new(ServiceLockers), new(*geo.Finder)),
		wire.Bind(new(ServiceCabinets), new(*cabinetService.Allocator)),
		wire.Bind(new(ServiceAssignment), new(*assignment.Scheduler)),
	)
	return &Application{}, nil
}

// InitializeDriverProgressWorker для Kafka воркера (cmd/worker-driver-progress)
func InitializeDriverProgressWorker(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	notifier *notification.Gateway,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		coreSet,
		progressSet,

		provideDriverProgressRetrier,
		provideDriverProgressHandler,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

// InitializeInjector для робота-отправителя (cmd/injector)
func InitializeInjector(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	notifier *notification.Gateway,
	redisClient *redis.Client,
	cfg *config.Config,
) (*InjectorApp, error) {
	wire.Build(
		coreSet,
		schedulerSet,

		provideInjectionRetrier,
		provideInjectionService,

		wire.Bind(new(injection.CustomerRepository), new(*customerRepo.Repository)),
		wire.Bind(new(injection.LockerFinder), new(*geo.Finder)),
		wire.Bind(new(injection.ParcelService), new(*parcelService.Service)),
		wire.Bind(new(injection.Scheduler), new(*assignment.Scheduler)),

		wire.Struct(new(InjectorApp), "*"),
	)
	return nil, nil
}

// InitializeSeeder для наполнения сети (cmd/seed)
func InitializeSeeder(
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*provisioning.Service, error) {
	wire.Build(
		provideQuerier,
		provideLockerRepository,
		provideCustomerRepository,
		provideDriverRepository,
		provideProvisioningService,

		wire.Bind(new(provisioning.LockerRepository), new(*lockerRepo.Repository)),
		wire.Bind(new(provisioning.CustomerRepository), new(*customerRepo.Repository)),
		wire.Bind(new(provisioning.DriverRepository), new(*driverRepo.Repository)),
	)
	return nil, nil
}

var coreSet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideLockerRepository,
	provideCabinetRepository,
	provideCustomerRepository,
	provideDriverRepository,
	provideParcelRepository,

	geo.New,
	cabinetService.New,
	provideCodeExpiryFactory,
	provideCodeManager,
	provideParcelService,

	wire.Bind(new(geo.Repository), new(*lockerRepo.Repository)),
	wire.Bind(new(cabinetService.Repository), new(*cabinetRepo.Repository)),
	wire.Bind(new(txcode.Repository), new(*parcelRepo.Repository)),
	wire.Bind(new(txcode.CodeExpiryFactory), new(*code_expiry.CodeExpiryFactory)),

	wire.Bind(new(parcelService.Repository), new(*parcelRepo.Repository)),
	wire.Bind(new(parcelService.CustomerRepository), new(*customerRepo.Repository)),
	wire.Bind(new(parcelService.LockerRepository), new(*lockerRepo.Repository)),
	wire.Bind(new(parcelService.LockerFinder), new(*geo.Finder)),
	wire.Bind(new(parcelService.CabinetAllocator), new(*cabinetService.Allocator)),
	wire.Bind(new(parcelService.CodeManager), new(*txcode.Manager)),
	wire.Bind(new(parcelService.Notifier), new(*notification.Gateway)),
	wire.Bind(new(parcelService.TxManager), new(*tx.Manager)),
)

var schedulerSet = wire.NewSet(
	provideRunLock,
	provideScheduler,

	wire.Bind(new(assignment.Repository), new(*parcelRepo.Repository)),
	wire.Bind(new(assignment.DriverRepository), new(*driverRepo.Repository)),
	wire.Bind(new(assignment.ParcelMachine), new(*parcelService.Service)),
)

var progressSet = wire.NewSet(
	progress_handle.NewStatusHandlerFactory,
	progress.New,

	wire.Bind(new(progress.ParcelMachine), new(*parcelService.Service)),
	wire.Bind(new(progress.DriverRepository), new(*driverRepo.Repository)),
	wire.Bind(new(progress.HandlerFactory), new(*progress_handle.StatusHandlerFactory)),
)
