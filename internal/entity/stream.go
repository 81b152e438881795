package entity

import (
	"sync"

	"mediarelay/pkg/rtcengine"
)

// MixedStream aggregates every track published under one origin stream, so
// late subscribers pick up the full set. Tracks are only ever added; streams
// live as long as their session.
type MixedStream struct {
	id string

	mu     sync.RWMutex
	tracks []rtcengine.Track
}

var _ rtcengine.Stream = (*MixedStream)(nil)

// NewMixedStream derives the mixed stream for an origin stream id.
func NewMixedStream(originID string) *MixedStream {
	return &MixedStream{id: "mixed-" + originID}
}

// ID -.
func (s *MixedStream) ID() string { return s.id }

// Tracks returns a snapshot copy.
func (s *MixedStream) Tracks() []rtcengine.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]rtcengine.Track(nil), s.tracks...)
}

// AddTrack appends track unless a track with the same id is already mixed in.
func (s *MixedStream) AddTrack(track rtcengine.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tracks {
		if t.ID() == track.ID() {
			return
		}
	}

	s.tracks = append(s.tracks, track)
}
