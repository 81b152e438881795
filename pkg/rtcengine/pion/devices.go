package pion

import (
	"fmt"

	"mediarelay/pkg/rtcengine"
)

// noDevices is the server-side capture surface. There is no hardware behind
// an SFU, so every call fails with rtcengine.ErrNotSupported.
type noDevices struct{}

var _ rtcengine.Devices = noDevices{}

func (noDevices) Enumerate() ([]rtcengine.DeviceInfo, error) {
	return nil, fmt.Errorf("pion - Devices - Enumerate: %w", rtcengine.ErrNotSupported)
}

func (noDevices) SupportedConstraints() (map[string]bool, error) {
	return nil, fmt.Errorf("pion - Devices - SupportedConstraints: %w", rtcengine.ErrNotSupported)
}
