package ble

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	subscribesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "i2cscan_beacon_ble_subscribes_total",
	})
	unsubscribesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "i2cscan_beacon_ble_unsubscribes_total",
	})
	notifySentCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "i2cscan_beacon_ble_notifications_sent_total",
	})
	notifyFailedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "i2cscan_beacon_ble_notifications_failed_total",
	})
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		subscribesCounter,
		unsubscribesCounter,
		notifySentCounter,
		notifyFailedCounter,
	)
}
