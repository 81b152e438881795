package sdputil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordLogger struct {
	warnings []string
}

func (r *recordLogger) Debug(message interface{}, args ...interface{}) {}
func (r *recordLogger) Info(message string, args ...interface{})       {}
func (r *recordLogger) Warn(message string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(message, args...))
}
func (r *recordLogger) Error(message interface{}, args ...interface{}) {}
func (r *recordLogger) Fatal(message interface{}, args ...interface{}) {}

func offerSDP() string {
	return strings.Join([]string{
		"v=0",
		"o=- 123456 2 IN IP4 127.0.0.1",
		"s=-",
		"t=0 0",
		"m=video 9 UDP/TLS/RTP/SAVPF 96 97 102",
		"c=IN IP4 0.0.0.0",
		"a=rtpmap:96 VP8/90000",
		"a=rtpmap:97 rtx/90000",
		"a=fmtp:97 apt=96",
		"a=rtpmap:102 H264/90000",
		"",
	}, "\r\n")
}

func TestPreferCodecReorders(t *testing.T) {
	l := &recordLogger{}

	tests := []struct {
		name    string
		codec   string
		formats string
	}{
		{name: "h264 moves ahead of vp8", codec: "H264", formats: "102 96 97"},
		{name: "vp8 drags its rtx along", codec: "vp8", formats: "96 97 102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PreferCodec(offerSDP(), tt.codec, l)
			require.NoError(t, err)
			assert.Contains(t, out, "m=video 9 UDP/TLS/RTP/SAVPF "+tt.formats)
		})
	}

	assert.Empty(t, l.warnings)
}

func TestPreferCodecMissingCodec(t *testing.T) {
	l := &recordLogger{}

	in := offerSDP()

	out, err := PreferCodec(in, "AV1", l)
	require.NoError(t, err)
	assert.Equal(t, in, out, "description must pass through untouched")
	require.Len(t, l.warnings, 1)
	assert.Contains(t, l.warnings[0], "AV1")
}

func TestPreferCodecBadInput(t *testing.T) {
	l := &recordLogger{}

	_, err := PreferCodec("not an sdp", "VP8", l)
	assert.Error(t, err)
}
