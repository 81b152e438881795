package pion

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/webrtc/v3"
	"go.uber.org/atomic"

	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine"
)

var errForeignTrack = errors.New("track was not produced by this engine")

// Conn implements rtcengine.Conn on a *webrtc.PeerConnection.
type Conn struct {
	pc *webrtc.PeerConnection
	l  logger.Interface

	mu      sync.Mutex
	senders []*Sender

	closed atomic.Bool

	statsMu   sync.Mutex
	firstSeen map[string]time.Time
}

var _ rtcengine.Conn = (*Conn)(nil)

func newConn(pc *webrtc.PeerConnection, l logger.Interface) *Conn {
	return &Conn{
		pc:        pc,
		l:         l,
		firstSeen: make(map[string]time.Time),
	}
}

// OnTrack wraps each inbound pion track so it can be re-added to other
// connections through a shared local track.
func (c *Conn) OnTrack(h func(rtcengine.Track, []rtcengine.Stream)) {
	c.pc.OnTrack(func(remote *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		t := newRemoteTrack(remote, c, c.l)

		h(t, []rtcengine.Stream{&remoteStream{
			id:     remote.StreamID(),
			tracks: []rtcengine.Track{t},
		}})
	})
}

type localSource interface {
	localTrack(streamID string) (webrtc.TrackLocal, error)
	subscribed()
}

// AddTrack starts forwarding track to this connection. The stream id of the
// first associated stream names the outbound MediaStream.
func (c *Conn) AddTrack(track rtcengine.Track, streams ...rtcengine.Stream) (rtcengine.Sender, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("pion - Conn - AddTrack: %w", rtcengine.ErrConnClosed)
	}

	src, ok := track.(localSource)
	if !ok {
		return nil, fmt.Errorf("pion - Conn - AddTrack - %q: %w", track.ID(), errForeignTrack)
	}

	streamID := track.StreamID()
	if len(streams) != 0 {
		streamID = streams[0].ID()
	}

	local, err := src.localTrack(streamID)
	if err != nil {
		return nil, fmt.Errorf("pion - Conn - AddTrack - localTrack: %w", err)
	}

	rtpSender, err := c.pc.AddTrack(local)
	if err != nil {
		return nil, fmt.Errorf("pion - Conn - AddTrack: %w", err)
	}

	go drainRTCP(rtpSender)
	src.subscribed()

	s := &Sender{sender: rtpSender, track: track}

	c.mu.Lock()
	c.senders = append(c.senders, s)
	c.mu.Unlock()

	return s, nil
}

// Senders -.
func (c *Conn) Senders() []rtcengine.Sender {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]rtcengine.Sender, 0, len(c.senders))
	for _, s := range c.senders {
		out = append(out, s)
	}

	return out
}

// Stats snapshots outbound-rtp statistics, with the matching remote-inbound
// loss, RTT and jitter folded in.
func (c *Conn) Stats() ([]rtcengine.StatsReport, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("pion - Conn - Stats: %w", rtcengine.ErrConnClosed)
	}

	raw := c.pc.GetStats()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	return mergeReports(raw, c.firstSeen, time.Now()), nil
}

// Close is idempotent.
func (c *Conn) Close() error {
	if !c.closed.CAS(false, true) {
		return nil
	}

	if err := c.pc.Close(); err != nil {
		return fmt.Errorf("pion - Conn - Close: %w", err)
	}

	return nil
}

func (c *Conn) writeRTCP(pkts ...rtcp.Packet) error {
	return c.pc.WriteRTCP(pkts)
}

// drainRTCP keeps the sender's interceptor chain fed. Reports themselves
// surface through GetStats.
func drainRTCP(s *webrtc.RTPSender) {
	buf := make([]byte, 1500)
	for {
		if _, _, err := s.Read(buf); err != nil {
			return
		}
	}
}
