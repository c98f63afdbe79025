//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_test
package parcel

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/logger"
)

type Repository interface {
	// Create присваивает ID и Version; ErrDuplicateIdempotencyKey при повторном ключе.
	Create(ctx context.Context, parcel *entities.Parcel) (*entities.Parcel, error)
	GetByID(ctx context.Context, id int64) (*entities.Parcel, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*entities.Parcel, error)
	GetByCabinetID(ctx context.Context, cabinetID int64) (*entities.Parcel, error)
	// Update сохраняет посылку, если её версия не изменилась, и увеличивает parcel.Version.
	// ErrConcurrentUpdate иначе.
	Update(ctx context.Context, parcel *entities.Parcel) error
	ListExpiredAwaitingDropoff(ctx context.Context, now time.Time, limit int) ([]int64, error)
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Customer, error)
}

type LockerRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Locker, error)
}

type LockerFinder interface {
	FindNearest(ctx context.Context, point orb.Point, k int) ([]entities.LockerDistance, error)
}

type CabinetAllocator interface {
	Reserve(ctx context.Context, lockerID int64, parcel *entities.Parcel) (*entities.Cabinet, error)
	Release(ctx context.Context, cabinetID int64) error
}

type CodeManager interface {
	IssueSenderCode(ctx context.Context, parcel *entities.Parcel, now time.Time) (string, error)
	IssueRecipientCode(ctx context.Context, parcel *entities.Parcel, now time.Time) (string, error)
	ValidateAndConsumeSenderCode(parcel *entities.Parcel, code string, now time.Time) error
	ValidateAndConsumeRecipientCode(parcel *entities.Parcel, code string, now time.Time) error
	Deactivate(parcel *entities.Parcel)
}

type Notifier interface {
	Notify(ctx context.Context, event entities.StatusEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
