package backoff_adapter

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"parcel-locker/pkg/retrier"
)

type Retrier struct {
	config retrier.Config
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

// ExecuteWithContext вызывает fn, пока она не вернёт nil, постоянную ошибку
// или пока не закончатся попытки. Пауза перед попыткой n равна
// InitialInterval * Multiplier^(n-2) (с учётом Randomization).
func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	var b backoff.BackOff = r.newExponential()
	if r.config.MaxAttempts > 0 {
		b = backoff.WithMaxRetries(b, r.config.MaxAttempts-1)
	}

	var (
		attempts  uint64
		permanent bool
	)
	operation := func() error {
		attempts++
		err := fn(ctx)
		if err != nil && r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			permanent = true
			return backoff.Permanent(err)
		}
		return err
	}

	var notify backoff.Notify
	if r.config.Notify != nil {
		notify = backoff.Notify(r.config.Notify)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	if err == nil || permanent || ctx.Err() != nil {
		return err
	}

	return fmt.Errorf("%w after %d attempts: %w", retrier.ErrRetriesExhausted, attempts, err)
}

// Нулевые значения конфига оставляют дефолты backoff, кроме Randomization:
// для него ноль означает детерминированные паузы.
func (r *Retrier) newExponential() *backoff.ExponentialBackOff {
	opts := []backoff.ExponentialBackOffOpts{
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
	}
	if r.config.InitialInterval > 0 {
		opts = append(opts, backoff.WithInitialInterval(r.config.InitialInterval))
	}
	if r.config.MaxInterval > 0 {
		opts = append(opts, backoff.WithMaxInterval(r.config.MaxInterval))
	}
	if r.config.Multiplier > 0 {
		opts = append(opts, backoff.WithMultiplier(r.config.Multiplier))
	}

	return backoff.NewExponentialBackOff(opts...)
}
