// Package availability mirrors confirmed bookings into per-owner calendar
// holds. It runs server-side behind the booking.changed queue and keeps the
// availability store consistent without the client ever writing two places.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	availabilityRepo "studiolink/database/repository/availability"
	"studiolink/events"
	"studiolink/models"
	"studiolink/services/notification"
	"studiolink/utils"
)

// Holds mirrored from bookings that carry neither confirmed times nor a
// stored duration fall back to blocking at least this long.
const minHoldDuration = 30 * time.Minute

// Synchronizer reacts to booking document writes. Handle is safe under
// redelivery: hold documents are keyed by (owner, booking), so every upsert
// and delete lands on the same two documents no matter how often it runs.
type Synchronizer struct {
	Repo     availabilityRepo.AvailabilityRepository
	Notifier notification.Notifier
}

// Handle applies one (before, after) booking snapshot pair to the
// availability store.
func (s *Synchronizer) Handle(ctx context.Context, event events.BookingChanged) error {
	before, after := event.Before, event.After

	// Deleted document: drop whatever holds it left behind.
	if after == nil {
		if before == nil {
			return nil
		}
		return s.removeHolds(ctx, before)
	}

	switch after.Status {
	case models.BookingConfirmed:
		if before != nil && before.Status == models.BookingConfirmed && sameHoldInterval(before, after) {
			return nil // redundant write, nothing to mirror
		}
		if err := s.upsertHolds(ctx, after); err != nil {
			return err
		}
		s.notifyConfirmed(ctx, after)
		return nil

	case models.BookingCancelled, models.BookingCompleted:
		if before == nil {
			return nil
		}
		if err := s.removeHolds(ctx, after); err != nil {
			return err
		}
		if after.Status == models.BookingCancelled {
			s.notifyCancelled(ctx, after)
		}
		return nil

	default:
		// A booking that fell back from confirmed must release its holds.
		if before != nil && before.Status == models.BookingConfirmed {
			return s.removeHolds(ctx, after)
		}
		return nil
	}
}

// upsertHolds writes one hold per owner: the studio's calendar and the
// engineer's.
func (s *Synchronizer) upsertHolds(ctx context.Context, b *models.Booking) error {
	start, end := holdInterval(b)

	for _, ownerID := range []string{b.StudioID, b.EngineerID} {
		entry := &models.AvailabilityEntry{
			OwnerID:         ownerID,
			Start:           start,
			End:             end,
			StudioID:        b.StudioID,
			RoomID:          b.RoomID,
			EngineerID:      b.EngineerID,
			SourceBookingID: b.ID,
		}
		if err := s.Repo.UpsertHold(ctx, entry); err != nil {
			return fmt.Errorf("failed to upsert hold for owner %s: %w", ownerID, err)
		}
	}
	return nil
}

// removeHolds deletes the booking's holds from both calendars. A hold that
// is already gone counts as removed.
func (s *Synchronizer) removeHolds(ctx context.Context, b *models.Booking) error {
	for _, ownerID := range []string{b.StudioID, b.EngineerID} {
		err := s.Repo.RemoveHold(ctx, ownerID, b.ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("failed to remove hold for owner %s: %w", ownerID, err)
		}
	}
	return nil
}

// holdInterval resolves the interval a hold should block: confirmed times
// when both are set, else the stored duration, else a 30-minute floor over
// the requested window.
func holdInterval(b *models.Booking) (time.Time, time.Time) {
	if b.ConfirmedStart != nil && b.ConfirmedEnd != nil {
		return *b.ConfirmedStart, *b.ConfirmedEnd
	}

	start := b.RequestedStart
	if b.ConfirmedStart != nil {
		start = *b.ConfirmedStart
	}

	var duration time.Duration
	if b.DurationMinutes > 0 {
		duration = time.Duration(b.DurationMinutes) * time.Minute
	} else {
		duration = b.RequestedEnd.Sub(b.RequestedStart)
		if duration < minHoldDuration {
			duration = minHoldDuration
		}
	}
	return start, start.Add(duration)
}

func sameHoldInterval(a, b *models.Booking) bool {
	aStart, aEnd := holdInterval(a)
	bStart, bEnd := holdInterval(b)
	return aStart.Equal(bStart) && aEnd.Equal(bEnd)
}

// Pushes are best-effort; a failed notification never fails the sync.
func (s *Synchronizer) notifyConfirmed(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger()
	data := map[string]string{"bookingId": b.ID, "status": string(b.Status)}
	for _, userID := range []string{b.ArtistID, b.EngineerID} {
		if err := s.Notifier.SendPush(ctx, userID, "Session confirmed",
			"Your studio session is confirmed.", data); err != nil {
			logger.Warn("failed to send confirmation push",
				zap.String("userId", userID), zap.Error(err))
		}
	}
}

func (s *Synchronizer) notifyCancelled(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger()
	data := map[string]string{"bookingId": b.ID, "status": string(b.Status)}
	for _, userID := range []string{b.ArtistID, b.EngineerID} {
		if err := s.Notifier.SendPush(ctx, userID, "Session cancelled",
			"Your studio session was cancelled.", data); err != nil {
			logger.Warn("failed to send cancellation push",
				zap.String("userId", userID), zap.Error(err))
		}
	}
}
