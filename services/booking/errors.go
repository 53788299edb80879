package booking

import (
	"errors"
	"fmt"
)

// Quote error codes. Handlers map each code onto its own HTTP status so the
// client can tell the user exactly why a slot failed.
const (
	CodeNoRoomAvailable       = "noRoomAvailable"
	CodeOutsideOperatingHours = "outsideOperatingHours"
	CodeSlotUnavailable       = "slotUnavailable"
	CodeInvalidDuration       = "invalidDuration"
)

type QuoteError struct {
	Code    string
	Message string
}

func (e *QuoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewQuoteError(code, msg string) error {
	return &QuoteError{Code: code, Message: msg}
}

// QuoteCode extracts the quote error code from err, or "" when err is not a
// quote failure.
func QuoteCode(err error) string {
	var qe *QuoteError
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
