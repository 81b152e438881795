// Package sfu implements the forwarding control plane: the participant
// registry, the stream mixer, simulcast/SVC layer control and the per
// connection bandwidth adaptation loop.
package sfu

import (
	"sort"
	"sync"
	"time"

	"mediarelay/internal/entity"
	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine"
)

// SFU owns the live sessions, keyed by room id. One Layers controller and
// one Monitor are shared across rooms; both key their state by connection,
// so rooms stay independent.
type SFU struct {
	l       logger.Interface
	layers  *Layers
	monitor *Monitor

	mu    sync.RWMutex
	rooms map[string]*Session
}

// Option -.
type Option func(*settings)

type settings struct {
	interval time.Duration
}

// AdaptationInterval overrides the 5s adaptation tick.
func AdaptationInterval(d time.Duration) Option {
	return func(s *settings) {
		s.interval = d
	}
}

// New -.
func New(l logger.Interface, opts ...Option) *SFU {
	cfg := settings{interval: _defaultInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	layers := NewLayers()

	return &SFU{
		l:       l,
		layers:  layers,
		monitor: NewMonitor(layers, l, Interval(cfg.interval)),
		rooms:   make(map[string]*Session),
	}
}

// GetSession returns the room's session, creating it on first use.
func (s *SFU) GetSession(roomID string) *Session {
	s.mu.RLock()
	session, ok := s.rooms[roomID]
	s.mu.RUnlock()

	if ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok = s.rooms[roomID]; ok {
		return session
	}

	session = NewSession(roomID, s.layers, s.monitor, s.l)
	s.rooms[roomID] = session

	return session
}

// Join registers a connection in a room.
func (s *SFU) Join(roomID, participantID string, conn rtcengine.Conn) error {
	return s.GetSession(roomID).AddParticipant(participantID, conn)
}

// Leave -.
func (s *SFU) Leave(roomID, participantID string) {
	s.mu.RLock()
	session, ok := s.rooms[roomID]
	s.mu.RUnlock()

	if ok {
		session.RemoveParticipant(participantID)
	}
}

// RoomIDs lists the rooms that have been opened, sorted.
func (s *SFU) RoomIDs() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.rooms))

	for id := range s.rooms {
		out = append(out, id)
	}
	s.mu.RUnlock()

	sort.Strings(out)

	return out
}

// RoomStats reports a room's counters. Unknown rooms report empty stats
// rather than an error, matching the idempotent removal semantics.
func (s *SFU) RoomStats(roomID string) entity.RoomStats {
	s.mu.RLock()
	session, ok := s.rooms[roomID]
	s.mu.RUnlock()

	if !ok {
		return entity.RoomStats{RoomID: roomID}
	}

	return session.Stats()
}

// Participants -.
func (s *SFU) Participants(roomID string) []entity.ParticipantInfo {
	s.mu.RLock()
	session, ok := s.rooms[roomID]
	s.mu.RUnlock()

	if !ok {
		return []entity.ParticipantInfo{}
	}

	return session.Participants()
}

// Layers exposes the layer controller for callers that publish tracks
// manually instead of through the mixer.
func (s *SFU) Layers() *Layers { return s.layers }

// MonitorNetworkConditions starts the adaptation loop for conn. The mixer
// does this automatically on forward; manual publishers call it themselves.
func (s *SFU) MonitorNetworkConditions(conn rtcengine.Conn) {
	s.monitor.Start(conn)
}

// Shutdown stops every adaptation loop and closes every session.
func (s *SFU) Shutdown() {
	s.mu.Lock()
	rooms := s.rooms
	s.rooms = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range rooms {
		session.Close()
	}

	s.monitor.StopAll()
}
