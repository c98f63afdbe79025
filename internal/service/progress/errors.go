package progress

import (
	"errors"

	"parcel-locker/internal/service/assignment"
)

var (
	ErrUndefinedStatus = errors.New("undefined driver progress status")
	ErrInvalidProgress = errors.New("parcel id and driver id are required")

	ErrDriverNotFound = assignment.ErrDriverNotFound
)
