//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_progress_post_test
package parcel_progress_post

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
	Apply(ctx context.Context, event entities.DriverProgress) (*entities.Parcel, error)
}
