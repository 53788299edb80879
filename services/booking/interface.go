package booking

import (
	"context"

	"studiolink/models"
)

// BookingService orchestrates quoting, submission and status transitions of
// session bookings. It writes booking documents only; availability holds are
// mirrored exclusively by the server-side synchronizer observing those
// writes.
type BookingService interface {
	Quote(ctx context.Context, input models.BookingRequestInput) (*models.Quote, error)
	Submit(ctx context.Context, input models.BookingRequestInput) (*models.Booking, error)
	Approve(ctx context.Context, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListForArtist(ctx context.Context, artistID string, limit int64) ([]models.Booking, error)
	ListForStudio(ctx context.Context, studioID string, limit int64) ([]models.Booking, error)
}
