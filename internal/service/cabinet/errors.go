package cabinet

import "errors"

var (
	ErrNoCabinetAvailable = errors.New("no cabinet available")
	ErrCabinetNotFound    = errors.New("cabinet not found")
	ErrInvalidLockerID    = errors.New("invalid locker id")
)
