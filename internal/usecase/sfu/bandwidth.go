package sfu

import "mediarelay/pkg/rtcengine"

// Network condition thresholds and the multiplicative penalties applied when
// they are crossed. Penalties stack.
const (
	_lossThreshold     = 0.05
	_rttThresholdMs    = 300
	_jitterThresholdMs = 100

	_lossPenalty   = 0.75
	_rttPenalty    = 0.85
	_jitterPenalty = 0.9
)

// Estimator derives a bandwidth estimate from a single outbound-rtp report.
// It keeps no history; every call stands alone.
type Estimator struct{}

// Estimate returns the estimated available bandwidth in bits per second.
// The base rate is the report's average send rate over its observation
// window, degraded for loss, round-trip time and jitter in that order.
// A report without a positive window estimates zero.
func (Estimator) Estimate(r rtcengine.StatsReport) uint64 {
	if r.Timestamp <= 0 {
		return 0
	}

	estimate := float64(r.BytesSent) * 8 / r.Timestamp

	var loss float64
	if r.PacketsSent != 0 {
		loss = float64(r.PacketsLost) / float64(r.PacketsSent)
	}

	if loss > _lossThreshold {
		estimate *= _lossPenalty
	}

	if r.RoundTripTime > _rttThresholdMs {
		estimate *= _rttPenalty
	}

	if r.Jitter > _jitterThresholdMs {
		estimate *= _jitterPenalty
	}

	return uint64(estimate)
}
