package entity

// ParticipantInfo -.
type ParticipantInfo struct {
	ID      string `json:"id"      example:"speaker-1"`
	Senders int    `json:"senders" example:"2"`
}

// RoomStats -.
type RoomStats struct {
	RoomID          string `json:"room_id"          example:"standup"`
	Participants    int    `json:"participants"     example:"3"`
	MixedStreams    int    `json:"mixed_streams"    example:"2"`
	ForwardedTracks uint64 `json:"forwarded_tracks" example:"12"`
	FailedForwards  uint64 `json:"failed_forwards"  example:"0"`
}
