package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"mediarelay/internal/entity"
)

type testLogger struct{}

func (testLogger) Debug(interface{}, ...interface{}) {}
func (testLogger) Info(string, ...interface{})       {}
func (testLogger) Warn(string, ...interface{})       {}
func (testLogger) Error(interface{}, ...interface{}) {}
func (testLogger) Fatal(interface{}, ...interface{}) {}

func setupRoomRoutes(t *testing.T) (*gin.Engine, *MockRooms) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	rooms := NewMockRooms(gomock.NewController(t))

	handler := gin.New()
	newRoomRoutes(handler.Group("/v1"), rooms, testLogger{})

	return handler, rooms
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))

	return w
}

func TestListRooms(t *testing.T) {
	handler, rooms := setupRoomRoutes(t)
	rooms.EXPECT().RoomIDs().Return([]string{"meeting", "standup"})

	w := serve(handler, http.MethodGet, "/v1/rooms")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rooms":["meeting","standup"]}`, w.Body.String())
}

func TestRoomStatsEndpoint(t *testing.T) {
	handler, rooms := setupRoomRoutes(t)
	rooms.EXPECT().RoomStats("standup").Return(entity.RoomStats{
		RoomID:          "standup",
		Participants:    3,
		MixedStreams:    2,
		ForwardedTracks: 12,
	})

	w := serve(handler, http.MethodGet, "/v1/rooms/standup")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(
		t,
		`{"room_id":"standup","participants":3,"mixed_streams":2,"forwarded_tracks":12,"failed_forwards":0}`,
		w.Body.String(),
	)
}

func TestRoomParticipantsEndpoint(t *testing.T) {
	handler, rooms := setupRoomRoutes(t)
	rooms.EXPECT().Participants("standup").Return([]entity.ParticipantInfo{
		{ID: "alice", Senders: 2},
	})

	w := serve(handler, http.MethodGet, "/v1/rooms/standup/participants")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"participants":[{"id":"alice","senders":2}]}`, w.Body.String())
}

func TestKickParticipant(t *testing.T) {
	handler, rooms := setupRoomRoutes(t)
	rooms.EXPECT().Leave("standup", "alice")

	w := serve(handler, http.MethodDelete, "/v1/rooms/standup/participants/alice")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rooms := NewMockRooms(gomock.NewController(t))

	handler := gin.New()
	NewRouter(handler, testLogger{}, rooms, nil, SignalingConfig{})

	w := serve(handler, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(handler, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}
