package injection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InjectedParcelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "injection_parcels_total",
			Help: "Parcels sent by injection robots",
		},
		[]string{"outcome"},
	)

	InjectionRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "injection_run_duration_seconds",
			Help:    "Duration of injection runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)
