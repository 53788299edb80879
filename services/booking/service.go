package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "studiolink/database/repository/booking"
	"studiolink/events"
	"studiolink/models"
	"studiolink/utils"
)

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Engine    *Engine
	Repo      bookingRepo.BookingRepository
	Publisher events.Publisher
}

func (s *DefaultBookingService) Quote(ctx context.Context, input models.BookingRequestInput) (*models.Quote, error) {
	return s.Engine.Quote(ctx, input)
}

// Submit re-quotes the request and persists the booking. A caller-supplied
// quote is never trusted: another booking may have filled the slot between
// quoting and submission, and re-validation is what detects that.
func (s *DefaultBookingService) Submit(ctx context.Context, input models.BookingRequestInput) (*models.Booking, error) {
	quote, err := s.Engine.Quote(ctx, input)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ArtistID:        input.ArtistID,
		EngineerID:      input.EngineerID,
		StudioID:        input.StudioID,
		RoomID:          quote.RoomID,
		RequestedStart:  quote.Start,
		RequestedEnd:    quote.End,
		DurationMinutes: int(quote.End.Sub(quote.Start).Minutes()),
		TotalPrice:      quote.Price,
		Notes:           input.Notes,
		Status:          models.BookingPending,
	}
	if quote.Instant {
		booking.Status = models.BookingConfirmed
		start, end := quote.Start, quote.End
		booking.ConfirmedStart = &start
		booking.ConfirmedEnd = &end
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishChange(ctx, booking.ID, nil, booking)
	return booking, nil
}

// Approve confirms a pending booking at its requested times.
func (s *DefaultBookingService) Approve(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(b *models.Booking) error {
		if b.Status != models.BookingPending {
			return fmt.Errorf("%w: cannot approve a %s booking", ErrInvalidTransition, b.Status)
		}
		b.Status = models.BookingConfirmed
		start, end := b.RequestedStart, b.RequestedEnd
		b.ConfirmedStart = &start
		b.ConfirmedEnd = &end
		return nil
	})
}

func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(b *models.Booking) error {
		if b.Status.Terminal() {
			return fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, b.Status)
		}
		b.Status = models.BookingCancelled
		return nil
	})
}

func (s *DefaultBookingService) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(b *models.Booking) error {
		if b.Status != models.BookingConfirmed {
			return fmt.Errorf("%w: cannot complete a %s booking", ErrInvalidTransition, b.Status)
		}
		b.Status = models.BookingCompleted
		return nil
	})
}

func (s *DefaultBookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return booking, nil
}

func (s *DefaultBookingService) ListForArtist(ctx context.Context, artistID string, limit int64) ([]models.Booking, error) {
	return s.Repo.ListForArtist(ctx, artistID, limit)
}

func (s *DefaultBookingService) ListForStudio(ctx context.Context, studioID string, limit int64) ([]models.Booking, error) {
	return s.Repo.ListForStudio(ctx, studioID, limit)
}

func (s *DefaultBookingService) transition(ctx context.Context, bookingID string, mutate func(*models.Booking) error) (*models.Booking, error) {
	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	before := *booking
	if err := mutate(booking); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}

	s.publishChange(ctx, booking.ID, &before, booking)
	return booking, nil
}

// publishChange hands the write to the synchronizer's queue. The booking
// document is already durable at this point; a publish failure is logged and
// the request flow continues.
func (s *DefaultBookingService) publishChange(ctx context.Context, bookingID string, before, after *models.Booking) {
	event := events.BookingChanged{
		BookingID:  bookingID,
		Before:     before,
		After:      after,
		OccurredAt: time.Now(),
	}
	if err := s.Publisher.PublishBookingChanged(ctx, event); err != nil {
		utils.GetLogger().Error("failed to publish booking change",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
}
