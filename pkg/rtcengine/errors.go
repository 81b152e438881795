package rtcengine

import "errors"

var (
	// ErrConnClosed is returned by operations on a closed connection.
	ErrConnClosed = errors.New("rtcengine: connection closed")

	// ErrNotSupported is returned by capability surfaces the engine does
	// not implement, such as device enumeration on a server.
	ErrNotSupported = errors.New("rtcengine: not supported")
)
