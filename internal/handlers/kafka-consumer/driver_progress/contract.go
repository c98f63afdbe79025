//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_progress_test
package driver_progress

import (
	"context"

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

type Service interface {
	Apply(ctx context.Context, event entities.DriverProgress) (*entities.Parcel, error)
}
