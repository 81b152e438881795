// Package rtcengine defines the transport boundary the control plane drives.
// Implementations wrap a real WebRTC stack; tests substitute in-memory fakes.
package rtcengine

// TrackKind tells audio from video.
type TrackKind string

const (
	TrackKindAudio TrackKind = "audio"
	TrackKindVideo TrackKind = "video"
)

// Track is a single media source, remote or local.
type Track interface {
	// ID is unique within the originating stream.
	ID() string
	// StreamID names the stream the track arrived on.
	StreamID() string
	Kind() TrackKind
}

// Stream is an ordered group of tracks under one id.
type Stream interface {
	ID() string
	Tracks() []Track
}

// Sender is the per-track outbound seat on a connection. Parameters returns
// a copy; mutations only take effect through SetParameters.
type Sender interface {
	Parameters() SendParameters
	SetParameters(SendParameters) error
	Track() Track
}

// Conn is one participant's transport. All methods are safe for concurrent
// use. After Close, AddTrack and Stats fail with ErrConnClosed.
type Conn interface {
	// AddTrack starts sending track, associated with the given streams.
	AddTrack(track Track, streams ...Stream) (Sender, error)
	// Senders lists every active outbound seat.
	Senders() []Sender
	// Stats snapshots the connection's RTP statistics.
	Stats() ([]StatsReport, error)
	// OnTrack registers the handler invoked for each inbound track.
	OnTrack(func(Track, []Stream))
	Close() error
}

// DeviceInfo describes one capture device.
type DeviceInfo struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// Devices is the capture-hardware surface. Server-side engines have no
// devices and fail every call with ErrNotSupported.
type Devices interface {
	Enumerate() ([]DeviceInfo, error)
	SupportedConstraints() (map[string]bool, error)
}
