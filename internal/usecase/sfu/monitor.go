package sfu

import (
	"sync"
	"time"

	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine"
)

const _defaultInterval = 5 * time.Second

// Monitor drives one adaptation loop per monitored connection. Loops are
// independent; a stall or failure on one connection never blocks another.
type Monitor struct {
	layers   *Layers
	est      Estimator
	l        logger.Interface
	interval time.Duration

	mu      sync.Mutex
	runners map[rtcengine.Conn]chan struct{}
}

// MonitorOption -.
type MonitorOption func(*Monitor)

// Interval overrides the tick period.
func Interval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// NewMonitor -.
func NewMonitor(layers *Layers, l logger.Interface, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		layers:   layers,
		l:        l,
		interval: _defaultInterval,
		runners:  make(map[rtcengine.Conn]chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start begins monitoring conn. Starting an already monitored connection is
// a no-op, so at most one loop runs per conn.
func (m *Monitor) Start(conn rtcengine.Conn) {
	if conn == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runners[conn]; ok {
		return
	}

	stop := make(chan struct{})
	m.runners[conn] = stop

	go m.run(conn, stop)
}

// Stop cancels conn's loop. Unknown connections are ignored.
func (m *Monitor) Stop(conn rtcengine.Conn) {
	m.mu.Lock()
	stop, ok := m.runners[conn]
	if ok {
		delete(m.runners, conn)
	}
	m.mu.Unlock()

	if ok {
		close(stop)
	}
}

// StopAll cancels every loop, used on shutdown.
func (m *Monitor) StopAll() {
	m.mu.Lock()
	runners := m.runners
	m.runners = make(map[rtcengine.Conn]chan struct{})
	m.mu.Unlock()

	for _, stop := range runners {
		close(stop)
	}
}

func (m *Monitor) run(conn rtcengine.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.tick(conn)
		}
	}
}

// tick estimates bandwidth from each fresh outbound report and clamps the
// connection's senders to it. Any failure skips the tick; the loop itself
// keeps running until stopped.
func (m *Monitor) tick(conn rtcengine.Conn) {
	adaptationTicks.Inc()

	reports, err := conn.Stats()
	if err != nil {
		m.l.Debug("sfu - Monitor - tick - Stats: %v", err)
		return
	}

	for _, r := range reports {
		if r.Type != rtcengine.StatsTypeOutboundRTP || r.Remote {
			continue
		}

		estimate := m.est.Estimate(r)
		bandwidthEstimate.Set(float64(estimate))

		if err := m.layers.AdjustBitrate(conn, estimate); err != nil {
			m.l.Debug("sfu - Monitor - tick - AdjustBitrate: %v", err)
			continue
		}
	}
}
