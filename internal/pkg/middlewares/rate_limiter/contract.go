package rate_limiter

import "parcel-locker/pkg/logger"

// Limiter общий для всех маршрутов, см. pkg/token_bucket.
type Limiter interface {
	Allow() bool
}

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
