// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"studiolink/database"
	"studiolink/models"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, bookingID string) error
	ListForArtist(ctx context.Context, artistID string, limit int64) ([]models.Booking, error)
	ListForStudio(ctx context.Context, studioID string, limit int64) ([]models.Booking, error)
	// FindConfirmedEndedBefore returns confirmed bookings whose session end
	// passed the cutoff; used by the completion sweeper.
	FindConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{coll: database.DB().Collection("bookings")}
}
