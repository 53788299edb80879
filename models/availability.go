package models

import (
	"fmt"
	"time"
)

type AvailabilityKind string

const (
	KindManualBlock AvailabilityKind = "manualBlock"
	KindBookingHold AvailabilityKind = "bookingHold"
)

// AvailabilityEntry blocks [Start, End) on one owner's calendar. The owner
// is either a studio or an engineer. Booking holds carry a back-reference
// to the booking they mirror; the booking stays the source of truth.
type AvailabilityEntry struct {
	ID              string           `bson:"id" json:"id"`
	OwnerID         string           `bson:"ownerId" json:"ownerId"`
	Kind            AvailabilityKind `bson:"kind" json:"kind"`
	Start           time.Time        `bson:"start" json:"start"`
	End             time.Time        `bson:"end" json:"end"`
	StudioID        string           `bson:"studioId,omitempty" json:"studioId,omitempty"`
	RoomID          string           `bson:"roomId,omitempty" json:"roomId,omitempty"`
	EngineerID      string           `bson:"engineerId,omitempty" json:"engineerId,omitempty"`
	SourceBookingID string           `bson:"sourceBookingId,omitempty" json:"sourceBookingId,omitempty"`
	Reason          string           `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt       time.Time        `bson:"createdAt" json:"createdAt"`
}

// HoldID is the deterministic document id for a booking hold. Keying holds
// by (owner, booking) makes the synchronizer's upserts and deletes
// idempotent under redelivery.
func HoldID(ownerID, bookingID string) string {
	return fmt.Sprintf("hold:%s:%s", ownerID, bookingID)
}

// Overlaps reports whether the entry's interval intersects [start, end).
// Abutting intervals do not overlap.
func (e AvailabilityEntry) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && start.Before(e.End)
}
