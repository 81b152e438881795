package sfu

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/pkg/rtcengine"
)

func runnerCount(m *Monitor) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.runners)
}

func monitoring(m *Monitor, conn rtcengine.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.runners[conn]

	return ok
}

// goodReport decodes to 400_000 bps with a 6% loss penalty, 300_000 bps.
func goodReport() rtcengine.StatsReport {
	return rtcengine.StatsReport{
		ID:          "out-1",
		Type:        rtcengine.StatsTypeOutboundRTP,
		BytesSent:   100_000,
		PacketsSent: 100,
		PacketsLost: 6,
		Timestamp:   2.0,
	}
}

func TestMonitorStartIsIdempotent(t *testing.T) {
	m := NewMonitor(NewLayers(), nopLogger{})
	t.Cleanup(m.StopAll)

	conn := newFakeConn()

	m.Start(conn)
	m.Start(conn)
	assert.Equal(t, 1, runnerCount(m))

	m.Start(nil)
	assert.Equal(t, 1, runnerCount(m))

	m.Stop(conn)
	assert.Zero(t, runnerCount(m))

	m.Stop(conn)
	assert.Zero(t, runnerCount(m), "stopping an unknown conn is a no-op")
}

func TestMonitorTickClampsSenders(t *testing.T) {
	layers := NewLayers()
	m := NewMonitor(layers, nopLogger{})

	conn := newFakeConn()
	require.NoError(t, layers.EnableSimulcast(conn, videoTrack("cam-1", "s"), &fakeStream{id: "s"}))

	conn.reports = []rtcengine.StatsReport{goodReport()}

	m.tick(conn)

	encodings := conn.lastSender().encodings()
	require.Len(t, encodings, 3)
	assert.Equal(t, uint64(300_000), encodings[0].MaxBitrate, "full tier clamped to the estimate")
	assert.Equal(t, uint64(200_000), encodings[1].MaxBitrate, "lower tiers keep their smaller caps")
	assert.Equal(t, uint64(100_000), encodings[2].MaxBitrate)
}

func TestMonitorTickIgnoresForeignReports(t *testing.T) {
	layers := NewLayers()
	m := NewMonitor(layers, nopLogger{})

	conn := newFakeConn()
	require.NoError(t, layers.EnableSimulcast(conn, videoTrack("cam-1", "s"), &fakeStream{id: "s"}))

	remote := goodReport()
	remote.Remote = true

	inbound := goodReport()
	inbound.Type = rtcengine.StatsTypeInboundRTP

	conn.reports = []rtcengine.StatsReport{remote, inbound}

	m.tick(conn)

	encodings := conn.lastSender().encodings()
	assert.Equal(t, uint64(500_000), encodings[0].MaxBitrate, "no local outbound report, no clamp")
}

func TestMonitorTickSkipsOnStatsError(t *testing.T) {
	layers := NewLayers()
	m := NewMonitor(layers, nopLogger{})

	conn := newFakeConn()
	require.NoError(t, layers.EnableSimulcast(conn, videoTrack("cam-1", "s"), &fakeStream{id: "s"}))

	conn.statsErr = errors.New("connection closed")
	conn.reports = []rtcengine.StatsReport{goodReport()}

	m.tick(conn)

	encodings := conn.lastSender().encodings()
	assert.Equal(t, uint64(500_000), encodings[0].MaxBitrate, "failed poll leaves encodings alone")
}

func TestMonitorTickFailureLeavesOtherConnsAlone(t *testing.T) {
	layers := NewLayers()
	m := NewMonitor(layers, nopLogger{})

	dead := newFakeConn()
	require.NoError(t, layers.EnableSimulcast(dead, videoTrack("cam-1", "s"), &fakeStream{id: "s"}))
	dead.statsErr = errors.New("connection closed")

	healthy := newFakeConn()
	require.NoError(t, layers.EnableSimulcast(healthy, videoTrack("cam-2", "s"), &fakeStream{id: "s"}))
	healthy.reports = []rtcengine.StatsReport{goodReport()}

	m.tick(dead)
	m.tick(healthy)

	assert.Equal(t, uint64(500_000), dead.lastSender().encodings()[0].MaxBitrate)
	assert.Equal(t, uint64(300_000), healthy.lastSender().encodings()[0].MaxBitrate)
}

func TestMonitorRunLoopPollsUntilStopped(t *testing.T) {
	layers := NewLayers()
	m := NewMonitor(layers, nopLogger{}, Interval(5*time.Millisecond))
	t.Cleanup(m.StopAll)

	conn := newFakeConn()
	require.NoError(t, layers.EnableSimulcast(conn, videoTrack("cam-1", "s"), &fakeStream{id: "s"}))
	conn.reports = []rtcengine.StatsReport{goodReport()}

	m.Start(conn)

	require.Eventually(t, func() bool {
		return conn.statsCallCount() >= 2
	}, time.Second, time.Millisecond, "loop should poll stats repeatedly")

	m.Stop(conn)

	time.Sleep(20 * time.Millisecond)
	polled := conn.statsCallCount()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, polled, conn.statsCallCount(), "stopped loop must not poll again")

	assert.Equal(t, uint64(300_000), conn.lastSender().encodings()[0].MaxBitrate)
}

func TestMonitorStopAll(t *testing.T) {
	m := NewMonitor(NewLayers(), nopLogger{})

	m.Start(newFakeConn())
	m.Start(newFakeConn())
	require.Equal(t, 2, runnerCount(m))

	m.StopAll()
	assert.Zero(t, runnerCount(m))
}
