package progress_handle

import (
	"context"
	"fmt"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/service/progress"
)

type StatusHandlerFactory struct {
	machine progress.ParcelMachine
}

func NewStatusHandlerFactory(machine progress.ParcelMachine) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		machine: machine,
	}
}

func (f *StatusHandlerFactory) GetHandler(status entities.ParcelStatus) (progress.ExecuteFn, error) {
	switch status {
	case entities.ParcelInTransit:
		return f.inTransitHandler, nil
	case entities.ParcelDeliveredToLocker:
		return f.deliveredHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", progress.ErrUndefinedStatus, status)
	}
}

func (f *StatusHandlerFactory) inTransitHandler(ctx context.Context, event entities.DriverProgress) (*entities.Parcel, error) {
	p, err := f.machine.StartTransit(ctx, event.ParcelID, event.DriverID)
	if err != nil {
		return nil, fmt.Errorf("start transit for parcel %d: %w", event.ParcelID, err)
	}
	return p, nil
}

// deliveredHandler без LockerID посылка остаётся в текущем постамате.
func (f *StatusHandlerFactory) deliveredHandler(ctx context.Context, event entities.DriverProgress) (*entities.Parcel, error) {
	var lockerID int64
	if event.LockerID != nil {
		lockerID = *event.LockerID
	}

	p, err := f.machine.DeliverToLocker(ctx, event.ParcelID, event.DriverID, lockerID)
	if err != nil {
		return nil, fmt.Errorf("deliver parcel %d to locker: %w", event.ParcelID, err)
	}
	return p, nil
}
