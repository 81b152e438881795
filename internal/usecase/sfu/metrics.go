package sfu

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "mediarelay"

var (
	participantsActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "room",
		Name:      "participants",
		Help:      "currently registered participants",
	}, []string{"room"})

	tracksForwarded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "room",
		Name:      "forwarded_tracks_total",
		Help:      "successful track forwards",
	}, []string{"room"})

	forwardFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "room",
		Name:      "forward_failures_total",
		Help:      "track forwards that failed and were skipped",
	}, []string{"room"})

	adaptationTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "adaptation",
		Name:      "ticks_total",
		Help:      "adaptation loop ticks across all connections",
	})

	bandwidthEstimate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "adaptation",
		Name:      "bandwidth_estimate_bits",
		Help:      "last computed bandwidth estimate",
	})
)

func init() {
	prometheus.MustRegister(
		participantsActive,
		tracksForwarded,
		forwardFailures,
		adaptationTicks,
		bandwidthEstimate,
	)
}
