// Package sdputil holds stateless SDP rewrites applied between signaling and
// the engine.
package sdputil

import (
	"fmt"
	"strings"

	"github.com/pion/sdp/v3"

	"mediarelay/pkg/logger"
)

// PreferCodec reorders the payload types of every media section so codec
// (e.g. "VP8", "H264", matched case-insensitively) is negotiated first. RTX
// payloads bound to a moved codec move with it. When no section carries the
// codec, a warning is logged and the description is returned unchanged.
func PreferCodec(raw, codec string, l logger.Interface) (string, error) {
	desc := &sdp.SessionDescription{}
	if err := desc.Unmarshal([]byte(raw)); err != nil {
		return "", fmt.Errorf("sdputil - PreferCodec - Unmarshal: %w", err)
	}

	found := false

	for _, m := range desc.MediaDescriptions {
		preferred := preferredPayloads(m, codec)
		if len(preferred) == 0 {
			continue
		}

		found = true

		isPreferred := make(map[string]bool, len(preferred))
		for _, pt := range preferred {
			isPreferred[pt] = true
		}

		rest := make([]string, 0, len(m.MediaName.Formats))
		for _, pt := range m.MediaName.Formats {
			if !isPreferred[pt] {
				rest = append(rest, pt)
			}
		}

		m.MediaName.Formats = append(preferred, rest...)
	}

	if !found {
		l.Warn("sdputil - PreferCodec: codec %s not offered, description unchanged", codec)

		return raw, nil
	}

	out, err := desc.Marshal()
	if err != nil {
		return "", fmt.Errorf("sdputil - PreferCodec - Marshal: %w", err)
	}

	return string(out), nil
}

// preferredPayloads returns the payload types announcing codec, each followed
// by its RTX payloads, in announcement order.
func preferredPayloads(m *sdp.MediaDescription, codec string) []string {
	var primaries []string

	for _, attr := range m.Attributes {
		if attr.Key != "rtpmap" {
			continue
		}

		fields := strings.Fields(attr.Value)
		if len(fields) < 2 {
			continue
		}

		name := strings.SplitN(fields[1], "/", 2)[0]
		if strings.EqualFold(name, codec) {
			primaries = append(primaries, fields[0])
		}
	}

	var out []string

	for _, primary := range primaries {
		out = append(out, primary)

		for _, attr := range m.Attributes {
			if attr.Key != "fmtp" {
				continue
			}

			fields := strings.Fields(attr.Value)
			if len(fields) == 2 && fields[1] == "apt="+primary {
				out = append(out, fields[0])
			}
		}
	}

	return out
}
