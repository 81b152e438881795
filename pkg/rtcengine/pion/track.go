package pion

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v3"
	"go.uber.org/atomic"

	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine"
)

const pliBackoff = 500 * time.Millisecond

// RemoteTrack is an inbound track plus the single shared local track all
// subscribers are fed from. One pump goroutine copies RTP from the remote
// side into the local track for the lifetime of the publisher.
type RemoteTrack struct {
	remote *webrtc.TrackRemote
	origin *Conn
	l      logger.Interface

	mu      sync.Mutex
	local   *webrtc.TrackLocalStaticRTP
	lastPli atomic.Int64
}

var _ rtcengine.Track = (*RemoteTrack)(nil)

func newRemoteTrack(remote *webrtc.TrackRemote, origin *Conn, l logger.Interface) *RemoteTrack {
	return &RemoteTrack{
		remote: remote,
		origin: origin,
		l:      l,
	}
}

// ID -.
func (t *RemoteTrack) ID() string { return t.remote.ID() }

// StreamID -.
func (t *RemoteTrack) StreamID() string { return t.remote.StreamID() }

// Kind -.
func (t *RemoteTrack) Kind() rtcengine.TrackKind {
	if t.remote.Kind() == webrtc.RTPCodecTypeAudio {
		return rtcengine.TrackKindAudio
	}

	return rtcengine.TrackKindVideo
}

// localTrack returns the shared outbound track, creating it and starting the
// pump on first use. The stream id is fixed by the first subscriber.
func (t *RemoteTrack) localTrack(streamID string) (webrtc.TrackLocal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.local == nil {
		local, err := webrtc.NewTrackLocalStaticRTP(t.remote.Codec().RTPCodecCapability, t.remote.ID(), streamID)
		if err != nil {
			return nil, err
		}

		t.local = local

		go t.pump()
	}

	return t.local, nil
}

// subscribed asks the publisher for a keyframe so the new subscriber does not
// wait out a full keyframe interval. PLIs are spaced out by pliBackoff.
func (t *RemoteTrack) subscribed() {
	if t.Kind() != rtcengine.TrackKindVideo {
		return
	}

	now := time.Now().UnixNano()

	last := t.lastPli.Load()
	if now-last < int64(pliBackoff) || !t.lastPli.CAS(last, now) {
		return
	}

	if err := t.origin.writeRTCP(&rtcp.PictureLossIndication{MediaSSRC: uint32(t.remote.SSRC())}); err != nil {
		t.l.Debug("pion - RemoteTrack - writeRTCP: %v", err)
	}
}

func (t *RemoteTrack) pump() {
	var pkt *rtp.Packet

	var err error

	for {
		pkt, _, err = t.remote.ReadRTP()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.l.Debug("pion - RemoteTrack - ReadRTP: %v", err)
			}

			return
		}

		if err = t.local.WriteRTP(pkt); err != nil && !errors.Is(err, io.ErrClosedPipe) {
			t.l.Debug("pion - RemoteTrack - WriteRTP: %v", err)
		}
	}
}

type remoteStream struct {
	id     string
	tracks []rtcengine.Track
}

var _ rtcengine.Stream = (*remoteStream)(nil)

func (s *remoteStream) ID() string { return s.id }

func (s *remoteStream) Tracks() []rtcengine.Track {
	return append([]rtcengine.Track(nil), s.tracks...)
}
