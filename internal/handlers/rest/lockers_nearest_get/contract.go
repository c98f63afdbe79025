//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=lockers_nearest_get_test
package lockers_nearest_get

import (
	"context"

	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	FindNearest(ctx context.Context, point orb.Point, k int) ([]entities.LockerDistance, error)
}
