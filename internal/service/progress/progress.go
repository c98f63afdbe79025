package progress

import (
	"context"
	"fmt"

	"parcel-locker/internal/entities"
)

// Service применяет события водителей к посылкам.
type Service struct {
	drivers       DriverRepository
	statusFactory HandlerFactory
}

func New(drivers DriverRepository, statusFactory HandlerFactory) *Service {
	return &Service{
		drivers:       drivers,
		statusFactory: statusFactory,
	}
}

func (s *Service) Apply(ctx context.Context, event entities.DriverProgress) (*entities.Parcel, error) {
	if event.ParcelID <= 0 || event.DriverID <= 0 {
		return nil, ErrInvalidProgress
	}

	if _, err := s.drivers.GetByID(ctx, event.DriverID); err != nil {
		return nil, fmt.Errorf("get driver %d: %w", event.DriverID, err)
	}

	executeFn, err := s.statusFactory.GetHandler(event.Status)
	if err != nil {
		return nil, err
	}

	return executeFn(ctx, event)
}
