package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Terminal reports whether no further status transitions are allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Booking is the single source of truth for a session request. Availability
// holds are mirrored from it by the synchronizer, never written alongside it.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	ArtistID       string        `bson:"artistId" json:"artistId"`
	EngineerID     string        `bson:"engineerId" json:"engineerId"`
	StudioID       string        `bson:"studioId" json:"studioId"`
	RoomID         string        `bson:"roomId" json:"roomId"`
	RequestedStart time.Time     `bson:"requestedStart" json:"requestedStart"`
	RequestedEnd   time.Time     `bson:"requestedEnd" json:"requestedEnd"`
	ConfirmedStart *time.Time    `bson:"confirmedStart,omitempty" json:"confirmedStart,omitempty"` // authoritative once set
	ConfirmedEnd   *time.Time    `bson:"confirmedEnd,omitempty" json:"confirmedEnd,omitempty"`
	DurationMinutes int          `bson:"durationMinutes" json:"durationMinutes"`
	TotalPrice     float64       `bson:"totalPrice" json:"totalPrice"`
	Status         BookingStatus `bson:"status" json:"status"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
