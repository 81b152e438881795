package sfu

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/atomic"

	"mediarelay/internal/entity"
	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine"
)

// Session is one room: the participant registry plus the stream mixer.
type Session struct {
	id      string
	l       logger.Interface
	layers  *Layers
	monitor *Monitor

	mu           sync.RWMutex
	participants map[string]*entity.Participant
	mixed        map[string]*entity.MixedStream
	publications []entity.TrackPublication

	forwarded atomic.Uint64
	failed    atomic.Uint64
}

// NewSession -.
func NewSession(id string, layers *Layers, monitor *Monitor, l logger.Interface) *Session {
	return &Session{
		id:           id,
		l:            l,
		layers:       layers,
		monitor:      monitor,
		participants: make(map[string]*entity.Participant),
		mixed:        make(map[string]*entity.MixedStream),
	}
}

// ID -.
func (s *Session) ID() string { return s.id }

// AddParticipant registers conn under id and starts routing its inbound
// tracks. Re-adding an id closes the stale connection and replaces it, so a
// reconnecting participant never leaks its predecessor.
func (s *Session) AddParticipant(id string, conn rtcengine.Conn) error {
	if id == "" {
		return fmt.Errorf("sfu - Session - AddParticipant: %w", ErrEmptyParticipantID)
	}

	if conn == nil {
		return fmt.Errorf("sfu - Session - AddParticipant: %w", ErrNilConn)
	}

	conn.OnTrack(func(track rtcengine.Track, streams []rtcengine.Stream) {
		var origin rtcengine.Stream
		if len(streams) != 0 {
			origin = streams[0]
		}

		s.HandleTrack(id, track, origin)
	})

	s.mu.Lock()
	stale, existed := s.participants[id]
	s.participants[id] = &entity.Participant{ID: id, Conn: conn}
	s.mu.Unlock()

	if existed {
		s.l.Warn("sfu - Session - AddParticipant: participant %s replaced, closing stale conn", id)
		s.teardown(stale.Conn)
	} else {
		participantsActive.WithLabelValues(s.id).Inc()
	}

	return nil
}

// RemoveParticipant unregisters id, stops its adaptation loop and closes its
// connection. Removing an unknown id does nothing.
func (s *Session) RemoveParticipant(id string) {
	s.mu.Lock()
	p, ok := s.participants[id]
	if ok {
		delete(s.participants, id)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	participantsActive.WithLabelValues(s.id).Dec()
	s.teardown(p.Conn)
}

func (s *Session) teardown(conn rtcengine.Conn) {
	s.monitor.Stop(conn)
	s.layers.forget(conn)

	if err := conn.Close(); err != nil {
		s.l.Error(fmt.Errorf("sfu - Session - teardown - conn.Close: %w", err))
	}
}

// HandleTrack mixes a newly published track and fans it out to every other
// participant registered at the time of the call. Per-target failures are
// logged and counted; the remaining targets still get the track.
func (s *Session) HandleTrack(participantID string, track rtcengine.Track, origin rtcengine.Stream) {
	if track == nil {
		return
	}

	originID := track.StreamID()
	if origin != nil {
		originID = origin.ID()
	}

	s.mu.Lock()

	mixed, ok := s.mixed[originID]
	if !ok {
		mixed = entity.NewMixedStream(originID)
		s.mixed[originID] = mixed
	}

	targets := make([]*entity.Participant, 0, len(s.participants))

	for pid, p := range s.participants {
		if pid == participantID {
			continue
		}

		targets = append(targets, p)
	}
	s.mu.Unlock()

	mixed.AddTrack(track)

	for _, target := range targets {
		if err := s.forward(target, track, mixed); err != nil {
			s.failed.Inc()
			forwardFailures.WithLabelValues(s.id).Inc()
			s.l.Error(fmt.Errorf("sfu - Session - HandleTrack - forward %s to %s: %w", track.ID(), target.ID, err))

			continue
		}

		s.forwarded.Inc()
		tracksForwarded.WithLabelValues(s.id).Inc()
		s.monitor.Start(target.Conn)
	}
}

// forward publishes one track to one subscriber. Video goes out as
// simulcast; audio is added as-is.
func (s *Session) forward(target *entity.Participant, track rtcengine.Track, mixed *entity.MixedStream) error {
	mode := entity.ModeNone

	var err error

	if track.Kind() == rtcengine.TrackKindVideo {
		mode = entity.ModeSimulcast
		err = s.layers.EnableSimulcast(target.Conn, track, mixed)
	} else {
		_, err = target.Conn.AddTrack(track, mixed)
	}

	if err != nil {
		return err
	}

	s.mu.Lock()
	s.publications = append(s.publications, entity.TrackPublication{
		TrackID:       track.ID(),
		ParticipantID: target.ID,
		Mode:          mode,
	})
	s.mu.Unlock()

	return nil
}

// BroadcastStream pushes every track of stream to every registered
// participant, publisher included, without mixed-stream bookkeeping.
func (s *Session) BroadcastStream(stream rtcengine.Stream) {
	if stream == nil {
		return
	}

	s.mu.RLock()
	targets := make([]*entity.Participant, 0, len(s.participants))

	for _, p := range s.participants {
		targets = append(targets, p)
	}
	s.mu.RUnlock()

	for _, track := range stream.Tracks() {
		for _, target := range targets {
			if _, err := target.Conn.AddTrack(track, stream); err != nil {
				s.failed.Inc()
				forwardFailures.WithLabelValues(s.id).Inc()
				s.l.Error(fmt.Errorf("sfu - Session - BroadcastStream - %s to %s: %w", track.ID(), target.ID, err))

				continue
			}

			s.forwarded.Inc()
			tracksForwarded.WithLabelValues(s.id).Inc()
		}
	}
}

// Participants lists the registry, sorted by id.
func (s *Session) Participants() []entity.ParticipantInfo {
	s.mu.RLock()
	out := make([]entity.ParticipantInfo, 0, len(s.participants))

	for _, p := range s.participants {
		out = append(out, entity.ParticipantInfo{ID: p.ID, Senders: len(p.Conn.Senders())})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Publications snapshots the forward records.
func (s *Session) Publications() []entity.TrackPublication {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entity.TrackPublication(nil), s.publications...)
}

// Stats -.
func (s *Session) Stats() entity.RoomStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return entity.RoomStats{
		RoomID:          s.id,
		Participants:    len(s.participants),
		MixedStreams:    len(s.mixed),
		ForwardedTracks: s.forwarded.Load(),
		FailedForwards:  s.failed.Load(),
	}
}

// Close removes every participant.
func (s *Session) Close() {
	s.mu.Lock()
	parts := make([]*entity.Participant, 0, len(s.participants))

	for _, p := range s.participants {
		parts = append(parts, p)
	}

	s.participants = make(map[string]*entity.Participant)
	s.mu.Unlock()

	for _, p := range parts {
		participantsActive.WithLabelValues(s.id).Dec()
		s.teardown(p.Conn)
	}
}
