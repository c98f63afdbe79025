//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cabinet_test
package cabinet

import (
	"context"

	"parcel-locker/internal/entities"
)

type Repository interface {
	// ClaimFree атомарно переводит свободную ячейку постамата с наименьшим ID в occupied.
	// ErrNoCabinetAvailable, если свободных нет.
	ClaimFree(ctx context.Context, lockerID int64) (*entities.Cabinet, error)
	// MarkFree возвращает false, если ячейка уже была свободна.
	MarkFree(ctx context.Context, cabinetID int64) (bool, error)
	CountByStatus(ctx context.Context, lockerID int64) (entities.LockerOccupancy, error)
}
