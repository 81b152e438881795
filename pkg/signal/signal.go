// Package signal carries the websocket signaling transport. It moves framed
// JSON events; interpreting them is the caller's job.
package signal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mediarelay/pkg/logger"
)

// Signaling events.
const (
	EventJoin      = "join"
	EventOffer     = "offer"
	EventAnswer    = "answer"
	EventCandidate = "candidate"
	EventError     = "error"
)

const (
	_maxMessageSize = 8192
	_sendBuffer     = 32
	_writeWait      = 10 * time.Second
	_pongWait       = time.Minute
	_pingPeriod     = (_pongWait * 9) / 10
)

// ErrPeerClosed -.
var ErrPeerClosed = errors.New("signal: peer closed")

// errSendFull reports a subscriber that stopped draining its socket.
var errSendFull = errors.New("signal: send buffer full")

// Message is the wire frame. Data stays raw until the event is known.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// JoinPayload -. Token is a sealed room id, checked only when the server
// carries a sealing key.
type JoinPayload struct {
	RoomID        string `json:"room_id"`
	ParticipantID string `json:"participant_id"`
	Token         []byte `json:"token,omitempty"`
}

// ErrorPayload -.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Peer owns one websocket connection. ReadLoop and WriteLoop each run in
// their own goroutine; all writes go through the send channel so the
// connection only ever has one writer.
type Peer struct {
	conn *websocket.Conn
	send chan []byte
	l    logger.Interface

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewPeer -.
func NewPeer(conn *websocket.Conn, l logger.Interface) *Peer {
	return &Peer{
		conn: conn,
		send: make(chan []byte, _sendBuffer),
		l:    l,
	}
}

// ReadLoop decodes frames and hands them to handle until the connection
// dies. Malformed frames are logged and skipped.
func (p *Peer) ReadLoop(handle func(*Message)) {
	defer func() {
		_ = p.conn.Close()
	}()

	p.conn.SetReadLimit(_maxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(_pongWait))
	p.conn.SetPongHandler(func(string) error { return p.conn.SetReadDeadline(time.Now().Add(_pongWait)) })

	for {
		_, raw, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.l.Debug("signal - Peer - ReadMessage: %v", err)
			}

			return
		}

		msg := &Message{}
		if err = json.Unmarshal(raw, msg); err != nil {
			p.l.Warn("signal - Peer - ReadLoop: malformed frame: %v", err)
			continue
		}

		handle(msg)
	}
}

// WriteLoop drains the send channel and keeps the connection alive with
// pings. It exits when Close is called or the connection breaks.
func (p *Peer) WriteLoop() {
	ticker := time.NewTicker(_pingPeriod)

	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
	}()

	for {
		select {
		case message, ok := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(_writeWait))

			if !ok {
				_ = p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := p.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				p.l.Debug("signal - Peer - WriteMessage: %v", err)
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(_writeWait))

			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send frames payload under event and queues it. A peer that stopped
// draining its socket gets the frame dropped with an error rather than
// blocking the caller.
func (p *Peer) Send(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("signal - Peer - Send - payload: %w", err)
	}

	raw, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("signal - Peer - Send - frame: %w", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPeerClosed
	}

	select {
	case p.send <- raw:
		return nil
	default:
		return errSendFull
	}
}

// SendError -.
func (p *Peer) SendError(text string) {
	if err := p.Send(EventError, ErrorPayload{Error: text}); err != nil {
		p.l.Debug("signal - Peer - SendError: %v", err)
	}
}

// Close is idempotent and releases the write loop.
func (p *Peer) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.send)
		p.mu.Unlock()
	})
}
