package parcel

import (
	"errors"

	"parcel-locker/internal/service/cabinet"
	"parcel-locker/internal/service/geo"
	"parcel-locker/internal/service/txcode"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidDimensions     = errors.New("invalid dimensions")
	ErrInvalidParcelID       = errors.New("invalid parcel id")

	ErrParcelNotFound          = errors.New("parcel not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrInvalidStateTransition  = errors.New("invalid state transition")
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
	ErrNoLockerAvailable       = errors.New("no locker available")
	ErrUnknownDriverContext    = errors.New("unknown driver context")

	// ErrConcurrentUpdate посылку изменили между чтением и записью; временная ошибка.
	ErrConcurrentUpdate = errors.New("concurrent parcel update")
)

var (
	ErrNoCabinetAvailable  = cabinet.ErrNoCabinetAvailable
	ErrLockerNotFound      = geo.ErrLockerNotFound
	ErrCodeMismatch        = txcode.ErrCodeMismatch
	ErrCodeExpired         = txcode.ErrCodeExpired
	ErrCodeAlreadyConsumed = txcode.ErrCodeAlreadyConsumed
	ErrCodeCollision       = txcode.ErrCodeCollision
)

// IsTransient ошибки, которые имеет смысл повторить с тем же запросом.
// Ошибки валидации, кодов и занятости ячеек постоянны и не повторяются.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate) || errors.Is(err, ErrCodeCollision)
}
