package sfu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSFU(t *testing.T) *SFU {
	t.Helper()

	s := New(nopLogger{}, AdaptationInterval(time.Minute))
	t.Cleanup(s.Shutdown)

	return s
}

func TestGetSessionReturnsOneInstancePerRoom(t *testing.T) {
	s := newTestSFU(t)

	first := s.GetSession("meeting")
	again := s.GetSession("meeting")
	other := s.GetSession("standup")

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
}

func TestJoinLeaveLifecycle(t *testing.T) {
	s := newTestSFU(t)
	conn := newFakeConn()

	require.NoError(t, s.Join("meeting", "alice", conn))

	parts := s.Participants("meeting")
	require.Len(t, parts, 1)
	assert.Equal(t, "alice", parts[0].ID)

	s.Leave("meeting", "alice")

	assert.Empty(t, s.Participants("meeting"))
	assert.Equal(t, 1, conn.closeCount())

	s.Leave("ghost-room", "alice")
	s.Leave("meeting", "alice")
	assert.Equal(t, 1, conn.closeCount(), "repeated leave never closes twice")
}

func TestJoinValidatesInput(t *testing.T) {
	s := newTestSFU(t)

	assert.ErrorIs(t, s.Join("meeting", "", newFakeConn()), ErrEmptyParticipantID)
	assert.ErrorIs(t, s.Join("meeting", "alice", nil), ErrNilConn)
}

func TestRoomIDsAreSorted(t *testing.T) {
	s := newTestSFU(t)

	s.GetSession("zulu")
	s.GetSession("alpha")
	s.GetSession("mike")

	assert.Equal(t, []string{"alpha", "mike", "zulu"}, s.RoomIDs())
}

func TestRoomStatsForUnknownRoom(t *testing.T) {
	s := newTestSFU(t)

	stats := s.RoomStats("ghost")

	assert.Equal(t, "ghost", stats.RoomID)
	assert.Zero(t, stats.Participants)
	assert.Zero(t, stats.ForwardedTracks)
	assert.Empty(t, s.RoomIDs(), "stats lookup must not open the room")
}

func TestRoomStatsCountsForwards(t *testing.T) {
	s := newTestSFU(t)

	alice := newFakeConn()
	bob := newFakeConn()

	require.NoError(t, s.Join("meeting", "alice", alice))
	require.NoError(t, s.Join("meeting", "bob", bob))

	alice.publish(videoTrack("cam-1", "alice-stream"), &fakeStream{id: "alice-stream"})

	stats := s.RoomStats("meeting")
	assert.Equal(t, 2, stats.Participants)
	assert.Equal(t, 1, stats.MixedStreams)
	assert.Equal(t, uint64(1), stats.ForwardedTracks)
}

func TestMonitorNetworkConditionsStartsLoop(t *testing.T) {
	s := newTestSFU(t)
	conn := newFakeConn()

	s.MonitorNetworkConditions(conn)

	assert.True(t, monitoring(s.monitor, conn))
}

func TestShutdownClosesEverything(t *testing.T) {
	s := New(nopLogger{}, AdaptationInterval(time.Minute))

	alice := newFakeConn()
	bob := newFakeConn()

	require.NoError(t, s.Join("meeting", "alice", alice))
	require.NoError(t, s.Join("standup", "bob", bob))

	alice.publish(audioTrack("mic-1", "alice-stream"), &fakeStream{id: "alice-stream"})

	s.Shutdown()

	assert.Equal(t, 1, alice.closeCount())
	assert.Equal(t, 1, bob.closeCount())
	assert.Empty(t, s.RoomIDs())
	assert.Zero(t, runnerCount(s.monitor))
}
