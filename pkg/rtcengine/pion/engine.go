// Package pion implements the rtcengine boundary on pion/webrtc.
package pion

import (
	"fmt"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"

	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine"
)

// Config narrows the engine to what the service actually tunes.
type Config struct {
	// ICEServers in URL form, e.g. "stun:stun.l.google.com:19302".
	ICEServers []string
	// PortMin/PortMax bound the ephemeral UDP range. 0/0 leaves it open.
	PortMin uint16
	PortMax uint16
	// AudioMime/VideoMime pin the negotiated codecs. Empty registers the
	// whole table.
	AudioMime string
	VideoMime string
}

// Engine builds connections that share one media engine and interceptor
// chain.
type Engine struct {
	api *webrtc.API
	cfg webrtc.Configuration
	l   logger.Interface
}

// NewEngine -.
func NewEngine(cfg Config, l logger.Interface) (*Engine, error) {
	me, err := newMediaEngine(cfg.AudioMime, cfg.VideoMime)
	if err != nil {
		return nil, fmt.Errorf("pion - NewEngine - newMediaEngine: %w", err)
	}

	ir := &interceptor.Registry{}
	if err = webrtc.RegisterDefaultInterceptors(me, ir); err != nil {
		return nil, fmt.Errorf("pion - NewEngine - RegisterDefaultInterceptors: %w", err)
	}

	se := webrtc.SettingEngine{}
	if cfg.PortMin != 0 || cfg.PortMax != 0 {
		if err = se.SetEphemeralUDPPortRange(cfg.PortMin, cfg.PortMax); err != nil {
			return nil, fmt.Errorf("pion - NewEngine - SetEphemeralUDPPortRange: %w", err)
		}
	}

	pcCfg := webrtc.Configuration{}
	if len(cfg.ICEServers) != 0 {
		pcCfg.ICEServers = []webrtc.ICEServer{{URLs: cfg.ICEServers}}
	}

	return &Engine{
		api: webrtc.NewAPI(
			webrtc.WithMediaEngine(me),
			webrtc.WithInterceptorRegistry(ir),
			webrtc.WithSettingEngine(se),
		),
		cfg: pcCfg,
		l:   l,
	}, nil
}

// NewConn opens a fresh peer connection.
func (e *Engine) NewConn() (*Conn, error) {
	pc, err := e.api.NewPeerConnection(e.cfg)
	if err != nil {
		return nil, fmt.Errorf("pion - Engine - NewPeerConnection: %w", err)
	}

	return newConn(pc, e.l), nil
}

// Devices reports the capture surface. Servers have none.
func (e *Engine) Devices() rtcengine.Devices {
	return noDevices{}
}
