package rtcengine

// Stats report types, following the WebRTC stats identifiers.
const (
	StatsTypeOutboundRTP = "outbound-rtp"
	StatsTypeInboundRTP  = "inbound-rtp"
)

// StatsReport is one stream's statistics snapshot. For outbound-rtp reports
// the receiver-side fields (PacketsLost, RoundTripTime, Jitter) carry the
// values from the matching remote-inbound report when one has arrived, zero
// otherwise.
type StatsReport struct {
	// ID identifies the underlying stat object, stable across snapshots.
	ID string
	// Type is one of the StatsType constants.
	Type string
	// Remote marks reports generated by the far end about our stream.
	Remote bool

	BytesSent   uint64
	PacketsSent uint32
	PacketsLost int32
	// RoundTripTime in milliseconds.
	RoundTripTime float64
	// Jitter in milliseconds.
	Jitter float64
	// Timestamp is the length of the report's observation window in seconds.
	Timestamp float64
}
