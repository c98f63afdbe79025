package cabinet

import (
	"context"
	"errors"
	"fmt"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/keymutex"
)

type Allocator struct {
	repository Repository
	lockers    *keymutex.Map[int64]
}

func New(repository Repository) *Allocator {
	return &Allocator{
		repository: repository,
		lockers:    keymutex.New[int64](),
	}
}

// Reserve занимает ячейку в постамате lockerID и привязывает её к посылке.
// Резервы в одном постамате выполняются по очереди, в разных независимо;
// в хранилище смена статуса дополнительно защищена условием status = free.
func (a *Allocator) Reserve(ctx context.Context, lockerID int64, parcel *entities.Parcel) (*entities.Cabinet, error) {
	if lockerID <= 0 {
		return nil, ErrInvalidLockerID
	}

	unlock := a.lockers.Lock(lockerID)
	defer unlock()

	cabinet, err := a.repository.ClaimFree(ctx, lockerID)
	if err != nil {
		if errors.Is(err, ErrNoCabinetAvailable) {
			return nil, fmt.Errorf("locker %d: %w", lockerID, ErrNoCabinetAvailable)
		}
		return nil, fmt.Errorf("claim free cabinet: %w", err)
	}

	if parcel != nil {
		parcel.CabinetID = &cabinet.ID
		parcel.StorageID = nil
	}

	return cabinet, nil
}

// Release освобождает ячейку. Повторное освобождение свободной ячейки не ошибка.
func (a *Allocator) Release(ctx context.Context, cabinetID int64) error {
	if _, err := a.repository.MarkFree(ctx, cabinetID); err != nil {
		return fmt.Errorf("release cabinet %d: %w", cabinetID, err)
	}
	return nil
}

func (a *Allocator) Occupancy(ctx context.Context, lockerID int64) (entities.LockerOccupancy, error) {
	if lockerID <= 0 {
		return entities.LockerOccupancy{}, ErrInvalidLockerID
	}

	occupancy, err := a.repository.CountByStatus(ctx, lockerID)
	if err != nil {
		return entities.LockerOccupancy{}, fmt.Errorf("count cabinets: %w", err)
	}
	occupancy.LockerID = lockerID
	return occupancy, nil
}
