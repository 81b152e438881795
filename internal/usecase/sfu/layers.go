package sfu

import (
	"fmt"
	"sync"

	"mediarelay/pkg/rtcengine"
)

// Simulcast rid tags, highest tier first.
const (
	fullResolution    = "f"
	halfResolution    = "h"
	quarterResolution = "q"
)

// svcMode is the scalability layout requested for SVC publishes.
const svcMode = "L3T3"

// Layers configures sender encodings. Every mutation runs under that
// connection's exclusive lock, so a simulcast setup and a bitrate clamp can
// never interleave their read-modify-write cycles on the same conn.
type Layers struct {
	mu    sync.Mutex
	locks map[rtcengine.Conn]*sync.Mutex
}

// NewLayers -.
func NewLayers() *Layers {
	return &Layers{locks: make(map[rtcengine.Conn]*sync.Mutex)}
}

func (ls *Layers) lockFor(conn rtcengine.Conn) *sync.Mutex {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	m, ok := ls.locks[conn]
	if !ok {
		m = &sync.Mutex{}
		ls.locks[conn] = m
	}

	return m
}

// forget drops the lock entry of a removed connection.
func (ls *Layers) forget(conn rtcengine.Conn) {
	ls.mu.Lock()
	delete(ls.locks, conn)
	ls.mu.Unlock()
}

func simulcastEncodings() []rtcengine.Encoding {
	return []rtcengine.Encoding{
		{Tag: fullResolution, MaxBitrate: 500_000},
		{Tag: halfResolution, MaxBitrate: 200_000, ScaleDownBy: 2},
		{Tag: quarterResolution, MaxBitrate: 100_000, ScaleDownBy: 4},
	}
}

// EnableSimulcast publishes track to conn and overwrites the sender's
// encodings with the three-tier ladder.
func (ls *Layers) EnableSimulcast(conn rtcengine.Conn, track rtcengine.Track, streams ...rtcengine.Stream) error {
	lock := ls.lockFor(conn)
	lock.Lock()
	defer lock.Unlock()

	sender, err := conn.AddTrack(track, streams...)
	if err != nil {
		return fmt.Errorf("sfu - Layers - EnableSimulcast - AddTrack: %w", err)
	}

	params := sender.Parameters()
	params.Encodings = simulcastEncodings()

	if err = sender.SetParameters(params); err != nil {
		return fmt.Errorf("sfu - Layers - EnableSimulcast - SetParameters: %w", err)
	}

	return nil
}

// EnableSVC publishes track to conn as a single scalable encoding. The
// sender's other encoding fields are left as they were.
func (ls *Layers) EnableSVC(conn rtcengine.Conn, track rtcengine.Track, streams ...rtcengine.Stream) error {
	lock := ls.lockFor(conn)
	lock.Lock()
	defer lock.Unlock()

	sender, err := conn.AddTrack(track, streams...)
	if err != nil {
		return fmt.Errorf("sfu - Layers - EnableSVC - AddTrack: %w", err)
	}

	params := sender.Parameters()
	if len(params.Encodings) == 0 {
		params.Encodings = []rtcengine.Encoding{{}}
	}

	params.Encodings[0].ScalabilityMode = svcMode

	if err = sender.SetParameters(params); err != nil {
		return fmt.Errorf("sfu - Layers - EnableSVC - SetParameters: %w", err)
	}

	return nil
}

// AdjustBitrate clamps every layer of every sender on conn to at most bits.
// Uncapped layers take the clamp as their cap; capped layers keep the lower
// of the two. All tiers get the same ceiling.
func (ls *Layers) AdjustBitrate(conn rtcengine.Conn, bits uint64) error {
	lock := ls.lockFor(conn)
	lock.Lock()
	defer lock.Unlock()

	for _, sender := range conn.Senders() {
		params := sender.Parameters()

		for i := range params.Encodings {
			limit := params.Encodings[i].MaxBitrate
			if limit == 0 || limit > bits {
				params.Encodings[i].MaxBitrate = bits
			}
		}

		if err := sender.SetParameters(params); err != nil {
			return fmt.Errorf("sfu - Layers - AdjustBitrate - SetParameters: %w", err)
		}
	}

	return nil
}
