//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=assignment_test
package assignment

import (
	"context"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/logger"
)

type Repository interface {
	// ListAwaitingDriver посылки в in_locker без водителя, по возрастанию ID.
	ListAwaitingDriver(ctx context.Context, limit int) ([]entities.PendingAssignment, error)
	// CountActiveByDriver число посылок в assigned_to_driver/in_transit на водителя.
	CountActiveByDriver(ctx context.Context) (map[int64]int, error)
}

type DriverRepository interface {
	ListAvailable(ctx context.Context) ([]entities.Driver, error)
}

type ParcelMachine interface {
	AssignDriver(ctx context.Context, parcelID, driverID int64) (*entities.Parcel, error)
}

// RunLock блокировка прогона между репликами.
type RunLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
