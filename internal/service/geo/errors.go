package geo

import "errors"

var (
	ErrLockerNotFound = errors.New("locker not found")
	ErrInvalidPoint   = errors.New("invalid point")
)
