// Package usecase declares the contracts the transport layers program
// against.
package usecase

import (
	"mediarelay/internal/entity"
	"mediarelay/pkg/rtcengine"
)

//go:generate mockgen -source=interfaces.go -destination=../controller/http/v1/mocks_test.go -package=v1

type (
	// Rooms is the forwarding control surface. HTTP, websocket and AMQP
	// controllers all drive the same implementation.
	Rooms interface {
		Join(roomID, participantID string, conn rtcengine.Conn) error
		Leave(roomID, participantID string)
		RoomIDs() []string
		RoomStats(roomID string) entity.RoomStats
		Participants(roomID string) []entity.ParticipantInfo
	}
)
