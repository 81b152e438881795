package rmqrpc

import "errors"

// Success -.
const Success = "success"

var (
	// ErrTimeout -.
	ErrTimeout = errors.New("timeout")

	// ErrBadHandler -.
	ErrBadHandler = errors.New("unregistered handler")

	// ErrInternalServer -.
	ErrInternalServer = errors.New("internal server error")
)
