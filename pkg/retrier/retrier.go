package retrier

import (
	"context"
	"errors"
	"time"
)

// ErrRetriesExhausted возвращается, когда исчерпаны все попытки;
// последняя ошибка операции остаётся доступна через errors.Is/As.
var ErrRetriesExhausted = errors.New("retries exhausted")

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// NotifyFunc вызывается перед каждой паузой: ошибка попытки и длительность паузы.
type NotifyFunc func(err error, delay time.Duration)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// 0 - без ограничения по числу попыток (работает только MaxElapsedTime)
	MaxAttempts uint64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc

	Notify NotifyFunc
}

// Do выполняет fn через r и возвращает результат последней успешной попытки.
func Do[T any](ctx context.Context, r Retrier, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := r.ExecuteWithContext(ctx, func(ctx context.Context) error {
		value, err := fn(ctx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
