package pion

import (
	"sync"

	"github.com/pion/webrtc/v3"

	"mediarelay/pkg/rtcengine"
)

// Sender pairs a pion RTPSender with the control-plane parameter block. pion
// has no per-encoding setter, so SetParameters records the block and
// Parameters serves it back; the recorded block is the authoritative control
// state.
type Sender struct {
	mu     sync.Mutex
	sender *webrtc.RTPSender
	track  rtcengine.Track
	params *rtcengine.SendParameters
}

var _ rtcengine.Sender = (*Sender)(nil)

// Track -.
func (s *Sender) Track() rtcengine.Track { return s.track }

// Parameters returns the recorded block, or the negotiated encodings when
// nothing has been recorded yet. A sender always has at least one encoding.
func (s *Sender) Parameters() rtcengine.SendParameters {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.params != nil {
		return s.params.Clone()
	}

	out := rtcengine.SendParameters{}
	for _, enc := range s.sender.GetParameters().Encodings {
		out.Encodings = append(out.Encodings, rtcengine.Encoding{Tag: enc.RID})
	}

	if len(out.Encodings) == 0 {
		out.Encodings = []rtcengine.Encoding{{}}
	}

	return out
}

// SetParameters -.
func (s *Sender) SetParameters(p rtcengine.SendParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := p.Clone()
	s.params = &cp

	return nil
}
