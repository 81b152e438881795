package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bep/debounce"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"

	"mediarelay/internal/usecase"
	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine/pion"
	"mediarelay/pkg/sdputil"
	"mediarelay/pkg/signal"
)

const (
	_readBufferSize  = 1024
	_writeBufferSize = 1024

	// pion fires OnNegotiationNeeded once per added track; a burst of
	// forwards should collapse into one offer.
	_renegotiateDelay = 100 * time.Millisecond
)

// SignalingConfig -.
type SignalingConfig struct {
	// SealKey authenticates join tokens. Empty disables the check.
	SealKey []byte
	// PreferredCodec reorders remote offers toward one video codec.
	PreferredCodec string
}

type signalingRoutes struct {
	rooms    usecase.Rooms
	engine   *pion.Engine
	cfg      SignalingConfig
	l        logger.Interface
	upgrader websocket.Upgrader
}

func newSignalingRoutes(handler *gin.RouterGroup, rooms usecase.Rooms, engine *pion.Engine, cfg SignalingConfig, l logger.Interface) {
	r := &signalingRoutes{
		rooms:  rooms,
		engine: engine,
		cfg:    cfg,
		l:      l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  _readBufferSize,
			WriteBufferSize: _writeBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	handler.GET("/websocket", r.websocketHandler)
}

// Handle incoming websockets. One socket signals one engine connection.
func (r *signalingRoutes) websocketHandler(c *gin.Context) {
	ws, err := r.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		r.l.Error(err, "http - v1 - websocketHandler - upgrade")

		return
	}

	peer := signal.NewPeer(ws, r.l)
	go peer.WriteLoop()

	call := &callState{routes: r, peer: peer}

	// When the read loop returns the socket is gone either way.
	defer call.hangup()

	peer.ReadLoop(call.handle)
}

// callState is one participant's signaling session. It is touched only from
// the socket's read loop, except for the engine callbacks which go straight
// to the peer.
type callState struct {
	routes *signalingRoutes
	peer   *signal.Peer

	conn          *pion.Conn
	roomID        string
	participantID string
}

func (s *callState) handle(msg *signal.Message) {
	switch msg.Event {
	case signal.EventJoin:
		s.join(msg.Data)
	case signal.EventOffer:
		s.offer(msg.Data)
	case signal.EventAnswer:
		s.answer(msg.Data)
	case signal.EventCandidate:
		s.candidate(msg.Data)
	default:
		s.peer.SendError("unknown event: " + msg.Event)
	}
}

func (s *callState) join(data json.RawMessage) {
	if s.conn != nil {
		s.peer.SendError("already joined")

		return
	}

	var payload signal.JoinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.peer.SendError("malformed join payload")

		return
	}

	if payload.RoomID == "" {
		s.peer.SendError("room_id is required")

		return
	}

	if !s.authorized(payload) {
		s.peer.SendError("invalid token")

		return
	}

	if payload.ParticipantID == "" {
		payload.ParticipantID = uuid.NewString()
	}

	conn, err := s.routes.engine.NewConn()
	if err != nil {
		s.routes.l.Error(err, "http - v1 - join")
		s.peer.SendError("transport unavailable")

		return
	}

	s.wire(conn)

	if err := s.routes.rooms.Join(payload.RoomID, payload.ParticipantID, conn); err != nil {
		s.routes.l.Error(err, "http - v1 - join")
		s.peer.SendError("join rejected")

		if closeErr := conn.Close(); closeErr != nil {
			s.routes.l.Error(closeErr, "http - v1 - join - Close")
		}

		return
	}

	s.conn = conn
	s.roomID = payload.RoomID
	s.participantID = payload.ParticipantID

	// confirm the assigned id back to the client
	if err := s.peer.Send(signal.EventJoin, signal.JoinPayload{
		RoomID:        payload.RoomID,
		ParticipantID: payload.ParticipantID,
	}); err != nil {
		s.routes.l.Debug("http - v1 - join - ack: %v", err)
	}
}

// authorized opens the sealed token and matches it against the room. No key
// configured means open access.
func (s *callState) authorized(payload signal.JoinPayload) bool {
	key := s.routes.cfg.SealKey
	if len(key) == 0 {
		return true
	}

	opened, err := signal.Open(key, payload.Token)
	if err != nil {
		s.routes.l.Warn("http - v1 - authorized: %v", err)

		return false
	}

	return string(opened) == payload.RoomID
}

// wire hooks the engine connection's callbacks to the socket: trickle ICE
// out, debounced renegotiation offers out, teardown on transport failure.
func (s *callState) wire(conn *pion.Conn) {
	conn.OnICECandidate(func(i *webrtc.ICECandidate) {
		if i == nil {
			return
		}

		if err := s.peer.Send(signal.EventCandidate, i.ToJSON()); err != nil {
			s.routes.l.Debug("http - v1 - wire - candidate: %v", err)
		}
	})

	renegotiate := debounce.New(_renegotiateDelay)
	conn.OnNegotiationNeeded(func() {
		renegotiate(func() {
			offer, err := conn.Offer()
			if err != nil {
				s.routes.l.Error(err, "http - v1 - wire - Offer")

				return
			}

			if err := s.peer.Send(signal.EventOffer, offer); err != nil {
				s.routes.l.Debug("http - v1 - wire - offer: %v", err)
			}
		})
	})

	conn.OnStateChange(func(state webrtc.PeerConnectionState) {
		switch state {
		case webrtc.PeerConnectionStateFailed, webrtc.PeerConnectionStateClosed:
			s.peer.Close()
		default:
		}
	})
}

func (s *callState) offer(data json.RawMessage) {
	if s.conn == nil {
		s.peer.SendError("join first")

		return
	}

	var offer webrtc.SessionDescription
	if err := json.Unmarshal(data, &offer); err != nil {
		s.peer.SendError("malformed offer")

		return
	}

	if codec := s.routes.cfg.PreferredCodec; codec != "" {
		sdp, err := sdputil.PreferCodec(offer.SDP, codec, s.routes.l)
		if err != nil {
			s.peer.SendError("malformed offer")

			return
		}

		offer.SDP = sdp
	}

	answer, err := s.conn.HandleOffer(offer)
	if err != nil {
		s.routes.l.Error(err, "http - v1 - offer")
		s.peer.SendError("offer rejected")

		return
	}

	if err := s.peer.Send(signal.EventAnswer, answer); err != nil {
		s.routes.l.Debug("http - v1 - offer - answer: %v", err)
	}
}

func (s *callState) answer(data json.RawMessage) {
	if s.conn == nil {
		s.peer.SendError("join first")

		return
	}

	var answer webrtc.SessionDescription
	if err := json.Unmarshal(data, &answer); err != nil {
		s.peer.SendError("malformed answer")

		return
	}

	if err := s.conn.HandleAnswer(answer); err != nil {
		s.routes.l.Error(err, "http - v1 - answer")
		s.peer.SendError("answer rejected")
	}
}

func (s *callState) candidate(data json.RawMessage) {
	if s.conn == nil {
		s.peer.SendError("join first")

		return
	}

	var candidate webrtc.ICECandidateInit
	if err := json.Unmarshal(data, &candidate); err != nil {
		s.peer.SendError("malformed candidate")

		return
	}

	if err := s.conn.AddRemoteCandidate(candidate); err != nil {
		s.routes.l.Error(err, "http - v1 - candidate")
	}
}

// hangup leaves the room, which closes the engine connection, then releases
// the socket.
func (s *callState) hangup() {
	if s.conn != nil {
		s.routes.rooms.Leave(s.roomID, s.participantID)
	}

	s.peer.Close()
}
