package assignment

import "errors"

var ErrDriverNotFound = errors.New("driver not found")
