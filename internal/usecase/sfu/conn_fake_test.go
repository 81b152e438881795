package sfu

import (
	"sync"

	"mediarelay/pkg/rtcengine"
)

// In-memory engine fakes. They record every interaction so tests can assert
// on what the control plane did rather than on what it logged.

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})       {}
func (nopLogger) Warn(string, ...interface{})       {}
func (nopLogger) Error(interface{}, ...interface{}) {}
func (nopLogger) Fatal(interface{}, ...interface{}) {}

type fakeTrack struct {
	id     string
	stream string
	kind   rtcengine.TrackKind
}

func videoTrack(id, stream string) *fakeTrack {
	return &fakeTrack{id: id, stream: stream, kind: rtcengine.TrackKindVideo}
}

func audioTrack(id, stream string) *fakeTrack {
	return &fakeTrack{id: id, stream: stream, kind: rtcengine.TrackKindAudio}
}

func (t *fakeTrack) ID() string                { return t.id }
func (t *fakeTrack) StreamID() string          { return t.stream }
func (t *fakeTrack) Kind() rtcengine.TrackKind { return t.kind }

type fakeStream struct {
	id     string
	tracks []rtcengine.Track
}

func (s *fakeStream) ID() string { return s.id }

func (s *fakeStream) Tracks() []rtcengine.Track {
	return append([]rtcengine.Track(nil), s.tracks...)
}

type fakeSender struct {
	mu     sync.Mutex
	track  rtcengine.Track
	params rtcengine.SendParameters
	setErr error
}

func (s *fakeSender) Track() rtcengine.Track { return s.track }

func (s *fakeSender) Parameters() rtcengine.SendParameters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.params.Clone()
}

func (s *fakeSender) SetParameters(p rtcengine.SendParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.setErr != nil {
		return s.setErr
	}

	s.params = p.Clone()

	return nil
}

func (s *fakeSender) encodings() []rtcengine.Encoding {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]rtcengine.Encoding(nil), s.params.Encodings...)
}

type forwardedCall struct {
	track   rtcengine.Track
	streams []rtcengine.Stream
}

type fakeConn struct {
	mu         sync.Mutex
	senders    []*fakeSender
	received   []forwardedCall
	onTrack    func(rtcengine.Track, []rtcengine.Stream)
	reports    []rtcengine.StatsReport
	seed       []rtcengine.Encoding
	closes     int
	statsCalls int
	addErr     error
	closeErr   error
	statsErr   error
}

var _ rtcengine.Conn = (*fakeConn)(nil)

func newFakeConn() *fakeConn {
	return &fakeConn{seed: []rtcengine.Encoding{{}}}
}

func (c *fakeConn) AddTrack(track rtcengine.Track, streams ...rtcengine.Stream) (rtcengine.Sender, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.addErr != nil {
		return nil, c.addErr
	}

	s := &fakeSender{
		track:  track,
		params: rtcengine.SendParameters{Encodings: append([]rtcengine.Encoding(nil), c.seed...)},
	}
	c.senders = append(c.senders, s)
	c.received = append(c.received, forwardedCall{track: track, streams: streams})

	return s, nil
}

func (c *fakeConn) Senders() []rtcengine.Sender {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]rtcengine.Sender, 0, len(c.senders))
	for _, s := range c.senders {
		out = append(out, s)
	}

	return out
}

func (c *fakeConn) Stats() ([]rtcengine.StatsReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.statsCalls++

	if c.statsErr != nil {
		return nil, c.statsErr
	}

	return append([]rtcengine.StatsReport(nil), c.reports...), nil
}

func (c *fakeConn) OnTrack(h func(rtcengine.Track, []rtcengine.Stream)) {
	c.mu.Lock()
	c.onTrack = h
	c.mu.Unlock()
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closes++

	return c.closeErr
}

// publish drives the registered track handler the way an arriving remote
// track would.
func (c *fakeConn) publish(track rtcengine.Track, streams ...rtcengine.Stream) {
	c.mu.Lock()
	h := c.onTrack
	c.mu.Unlock()

	if h != nil {
		h(track, streams)
	}
}

func (c *fakeConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closes
}

func (c *fakeConn) statsCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.statsCalls
}

func (c *fakeConn) forwards() []forwardedCall {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]forwardedCall(nil), c.received...)
}

func (c *fakeConn) lastSender() *fakeSender {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.senders) == 0 {
		return nil
	}

	return c.senders[len(c.senders)-1]
}
