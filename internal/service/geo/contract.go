//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=geo_test
package geo

import (
	"context"

	"parcel-locker/internal/entities"
)

type Repository interface {
	// ListWithFreeCabinets возвращает актуальный срез постаматов, где есть хотя бы одна свободная ячейка.
	ListWithFreeCabinets(ctx context.Context) ([]entities.Locker, error)
}
