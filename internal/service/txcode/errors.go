package txcode

import "errors"

var (
	ErrCodeMismatch        = errors.New("transaction code mismatch")
	ErrCodeExpired         = errors.New("transaction code expired")
	ErrCodeAlreadyConsumed = errors.New("transaction code already consumed")
	ErrCodeNotIssued       = errors.New("transaction code not issued")
	ErrCodeAlreadyIssued   = errors.New("transaction code already issued")

	// ErrCodeCollision не удалось подобрать уникальный код; временная ошибка.
	ErrCodeCollision = errors.New("transaction code collision")
)
