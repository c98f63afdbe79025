package injection

import (
	"errors"

	"parcel-locker/internal/service/parcel"
)

var (
	ErrRunInProgress = errors.New("injection run already in progress")
	ErrUnknownCity   = errors.New("unknown city")
)

// IsTransient повторяемые ошибки создания и сдачи посылки.
func IsTransient(err error) bool {
	return parcel.IsTransient(err)
}
