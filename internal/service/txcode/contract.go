//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=txcode_test
package txcode

import (
	"context"
	"time"

	"parcel-locker/internal/entities"
)

type Repository interface {
	ActiveCodeExists(ctx context.Context, kind entities.CodeKind, code string) (bool, error)
}

type CodeExpiryFactory interface {
	CalculateExpiry(kind entities.CodeKind, issuedAt time.Time) time.Time
}

type Generator interface {
	Generate() (string, error)
}
