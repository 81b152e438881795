package pion

import (
	"fmt"

	"github.com/pion/webrtc/v3"
)

// HandleOffer applies a remote offer and produces the local answer. ICE
// candidates trickle separately through OnICECandidate.
func (c *Conn) HandleOffer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	if err := c.pc.SetRemoteDescription(offer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("pion - Conn - SetRemoteDescription: %w", err)
	}

	answer, err := c.pc.CreateAnswer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("pion - Conn - CreateAnswer: %w", err)
	}

	if err = c.pc.SetLocalDescription(answer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("pion - Conn - SetLocalDescription: %w", err)
	}

	return answer, nil
}

// HandleAnswer applies the remote answer to a locally created offer.
func (c *Conn) HandleAnswer(answer webrtc.SessionDescription) error {
	if err := c.pc.SetRemoteDescription(answer); err != nil {
		return fmt.Errorf("pion - Conn - SetRemoteDescription: %w", err)
	}

	return nil
}

// Offer creates and installs a local offer, used when the server side
// renegotiates after adding tracks.
func (c *Conn) Offer() (webrtc.SessionDescription, error) {
	offer, err := c.pc.CreateOffer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("pion - Conn - CreateOffer: %w", err)
	}

	if err = c.pc.SetLocalDescription(offer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("pion - Conn - SetLocalDescription: %w", err)
	}

	return offer, nil
}

// AddRemoteCandidate -.
func (c *Conn) AddRemoteCandidate(candidate webrtc.ICECandidateInit) error {
	if err := c.pc.AddICECandidate(candidate); err != nil {
		return fmt.Errorf("pion - Conn - AddICECandidate: %w", err)
	}

	return nil
}

// OnICECandidate -.
func (c *Conn) OnICECandidate(f func(*webrtc.ICECandidate)) {
	c.pc.OnICECandidate(f)
}

// OnNegotiationNeeded -.
func (c *Conn) OnNegotiationNeeded(f func()) {
	c.pc.OnNegotiationNeeded(f)
}

// OnStateChange -.
func (c *Conn) OnStateChange(f func(webrtc.PeerConnectionState)) {
	c.pc.OnConnectionStateChange(f)
}
