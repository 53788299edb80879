package models

import "time"

// Quote is the ephemeral result of evaluating a BookingRequestInput. It is
// embedded into the booking at submission time, never stored on its own.
type Quote struct {
	RoomID  string    `json:"roomId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Price   float64   `json:"price"`
	Instant bool      `json:"instant"` // true = auto-confirm, no manual approval
}

// QuoteSession caches a quoted request between the quote and submit calls of
// one client flow.
type QuoteSession struct {
	SessionID string              `json:"sessionId"`
	Input     BookingRequestInput `json:"input"`
	Quote     Quote               `json:"quote"`
	QuotedAt  time.Time           `json:"quotedAt"`
}
