// Package events defines the booking change events exchanged over the
// message broker and the publish/consume plumbing around them.
package events

import (
	"time"

	"studiolink/models"
)

// QueueBookingChanged carries every booking document write to the
// availability synchronizer.
const QueueBookingChanged = "booking.changed"

// BookingChanged is emitted on every create/update/delete of a booking
// document. Before is nil on create, After is nil on delete. Consumers must
// tolerate redelivery and out-of-order arrival of rapid successive writes.
type BookingChanged struct {
	BookingID  string          `json:"bookingId"`
	Before     *models.Booking `json:"before,omitempty"`
	After      *models.Booking `json:"after,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}
