//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=locker_occupancy_get_test
package locker_occupancy_get

import (
	"context"

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
	Occupancy(ctx context.Context, lockerID int64) (entities.LockerOccupancy, error)
}
