//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cabinet_parcel_get_test
package cabinet_parcel_get

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
	GetByCabinet(ctx context.Context, cabinetID int64) (*entities.Parcel, error)
}
