//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=provisioning_test
package provisioning

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

type LockerRepository interface {
	Create(ctx context.Context, create entities.LockerCreate) (*entities.Locker, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, user entities.User) (*entities.Customer, error)
}

type DriverRepository interface {
	Create(ctx context.Context, driver entities.Driver) (*entities.Driver, error)
}
