//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_dropoff_post_test
package parcel_dropoff_post

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
	DropOff(ctx context.Context, parcelID int64, code string) (*entities.Parcel, error)
}
