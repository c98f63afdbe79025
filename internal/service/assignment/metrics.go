package assignment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentParcelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignment_parcels_total",
			Help: "Parcels processed by batch assignment by outcome",
		},
		[]string{"outcome"},
	)

	AssignmentRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assignment_run_duration_seconds",
			Help:    "Duration of a single batch assignment pass",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	AssignmentRunsCoalescedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_runs_coalesced_total",
			Help: "Batch assignment requests folded into a run already in progress",
		},
	)
)
