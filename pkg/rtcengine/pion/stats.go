package pion

import (
	"time"

	"github.com/pion/webrtc/v3"

	"mediarelay/pkg/rtcengine"
)

// minStatsWindow withholds a stream's reports until it has been observed
// long enough that the byte counters describe a real sending window.
const minStatsWindow = time.Second

// mergeReports flattens a pion stats snapshot into boundary reports. One
// report per outbound-rtp stream; the matching remote-inbound loss, RTT and
// jitter are folded in by SSRC, converted to milliseconds. firstSeen keeps
// the time each stream id was first observed and is extended in place.
func mergeReports(raw webrtc.StatsReport, firstSeen map[string]time.Time, now time.Time) []rtcengine.StatsReport {
	remoteBySSRC := make(map[webrtc.SSRC]webrtc.RemoteInboundRTPStreamStats)

	for _, s := range raw {
		if r, ok := s.(webrtc.RemoteInboundRTPStreamStats); ok {
			remoteBySSRC[r.SSRC] = r
		}
	}

	var out []rtcengine.StatsReport

	for _, s := range raw {
		o, ok := s.(webrtc.OutboundRTPStreamStats)
		if !ok {
			continue
		}

		first, seen := firstSeen[o.ID]
		if !seen {
			firstSeen[o.ID] = now
			continue
		}

		window := now.Sub(first)
		if window < minStatsWindow {
			continue
		}

		rep := rtcengine.StatsReport{
			ID:          o.ID,
			Type:        rtcengine.StatsTypeOutboundRTP,
			BytesSent:   o.BytesSent,
			PacketsSent: o.PacketsSent,
			Timestamp:   window.Seconds(),
		}

		if r, ok := remoteBySSRC[o.SSRC]; ok {
			rep.PacketsLost = r.PacketsLost
			rep.RoundTripTime = r.RoundTripTime * 1000
			rep.Jitter = r.Jitter * 1000
		}

		out = append(out, rep)
	}

	return out
}
