package models

import "time"

// BookingRequestInput holds a candidate session request as the client
// assembles it. It is consumed once by the quote engine and never persisted.
type BookingRequestInput struct {
	ArtistID        string    `json:"artistId"` // defaults to the authenticated caller
	StudioID        string    `json:"studioId" binding:"required"`
	EngineerID      string    `json:"engineerId" binding:"required"`
	RoomID          string    `json:"roomId"` // optional; falls back to the studio's default room
	Start           time.Time `json:"start" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"` // 0 = use the engineer's default session duration
	Notes           string    `json:"notes"`
}
