package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"parcel-locker/internal/service/parcel"
	"parcel-locker/pkg/retrier"
)

var RetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "parcel_retries_total",
		Help: "Total number of retried parcel operations",
	},
	[]string{"operation", "reason"},
)

// RetryNotify счётчик повторов для retrier.Config.Notify.
func RetryNotify(operation string) retrier.NotifyFunc {
	return func(err error, _ time.Duration) {
		RetriesTotal.WithLabelValues(operation, retryReason(err)).Inc()
	}
}

func retryReason(err error) string {
	switch {
	case errors.Is(err, parcel.ErrConcurrentUpdate):
		return "concurrent_update"
	case errors.Is(err, parcel.ErrCodeCollision):
		return "code_collision"
	default:
		return "other"
	}
}
