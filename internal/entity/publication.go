package entity

// PublishMode tags how a forwarded track was configured on its sender, so
// the configuration applied is always explicit rather than inferred from the
// encoding list.
type PublishMode int

const (
	// ModeNone is a plain forward, typically audio.
	ModeNone PublishMode = iota
	// ModeSimulcast is the three-tier simulcast ladder.
	ModeSimulcast
	// ModeSVC is a single scalable encoding.
	ModeSVC
)

// String -.
func (m PublishMode) String() string {
	switch m {
	case ModeSimulcast:
		return "simulcast"
	case ModeSVC:
		return "svc"
	default:
		return "none"
	}
}

// TrackPublication records one forward of one track to one subscriber.
type TrackPublication struct {
	TrackID       string
	ParticipantID string
	Mode          PublishMode
}
