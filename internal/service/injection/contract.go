//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=injection_test
package injection

import (
	"context"

	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type CustomerRepository interface {
	ListByCity(ctx context.Context, city string, limit, offset int) ([]entities.Customer, error)
}

type LockerFinder interface {
	FindNearest(ctx context.Context, point orb.Point, k int) ([]entities.LockerDistance, error)
}

type ParcelService interface {
	Create(ctx context.Context, req entities.ParcelCreate) (*entities.Parcel, error)
	DropOff(ctx context.Context, parcelID int64, code string) (*entities.Parcel, error)
}

type Scheduler interface {
	RunOnce(ctx context.Context) (entities.AssignmentResult, error)
}
