//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=progress_test
package progress

import (
	"context"

	"parcel-locker/internal/entities"
)

type DriverRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Driver, error)
}

type ParcelMachine interface {
	StartTransit(ctx context.Context, parcelID, driverID int64) (*entities.Parcel, error)
	DeliverToLocker(ctx context.Context, parcelID, driverID, lockerID int64) (*entities.Parcel, error)
}

type (
	ExecuteFn      func(ctx context.Context, event entities.DriverProgress) (*entities.Parcel, error)
	HandlerFactory interface {
		GetHandler(status entities.ParcelStatus) (ExecuteFn, error)
	}
)
