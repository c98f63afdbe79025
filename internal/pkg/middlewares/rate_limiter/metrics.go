package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateLimitExceededTotal route это шаблон mux, а не сырой путь.
var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "parcel_rate_limit_exceeded_total",
		Help: "Requests rejected by the rate limiter",
	},
	[]string{"method", "route"},
)
