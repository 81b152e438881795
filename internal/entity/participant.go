// Package entity defines main entities for business logic (services), data base mapping and
// HTTP response objects if suitable. Each logic group entities in own file.
package entity

import "mediarelay/pkg/rtcengine"

// Participant is one registered connection in a room. The session owns the
// conn and closes it on removal.
type Participant struct {
	ID   string
	Conn rtcengine.Conn
}
