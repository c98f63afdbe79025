package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "parcel_notifications_total",
		Help: "Parcel status notifications by result",
	},
	[]string{"result"}, // queued, dropped, failed
)
