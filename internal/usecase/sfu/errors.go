package sfu

import "errors"

var (
	// ErrEmptyParticipantID -.
	ErrEmptyParticipantID = errors.New("participant id must not be empty")

	// ErrNilConn -.
	ErrNilConn = errors.New("participant conn must not be nil")
)
