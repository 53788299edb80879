package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	availabilityRepo "studiolink/database/repository/availability"
	engineerRepo "studiolink/database/repository/engineer"
	studioRepo "studiolink/database/repository/studio"
	"studiolink/models"
)

// Engine evaluates a candidate booking request: resolves the room, checks
// operating hours and both calendars, prices the session and decides
// instant-vs-pending. Read-only; nothing is reserved by quoting.
type Engine struct {
	StudioRepo       studioRepo.StudioRepository
	EngineerRepo     engineerRepo.EngineerRepository
	AvailabilityRepo availabilityRepo.AvailabilityRepository
}

func (e *Engine) Quote(ctx context.Context, input models.BookingRequestInput) (*models.Quote, error) {
	studio, err := e.StudioRepo.GetByID(ctx, input.StudioID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch studio %s: %w", input.StudioID, err)
	}

	settings, err := e.fetchEngineerSettings(ctx, input.EngineerID)
	if err != nil {
		return nil, err
	}

	duration := input.DurationMinutes
	if duration == 0 && settings != nil {
		duration = settings.DefaultSessionDurationMinutes
	}
	if duration <= 0 {
		return nil, NewQuoteError(CodeInvalidDuration, "session duration must be positive")
	}

	room, err := e.resolveRoom(ctx, studio.ID, input.RoomID)
	if err != nil {
		return nil, err
	}

	start := input.Start
	end := start.Add(time.Duration(duration) * time.Minute)

	if !ScheduleAllows(studio.OperatingSchedule, start, end) {
		return nil, NewQuoteError(CodeOutsideOperatingHours,
			fmt.Sprintf("studio %s is not open between %s and %s", studio.ID,
				start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}

	if err := e.checkStudioCalendar(ctx, studio.ID, room.ID, start, end); err != nil {
		return nil, err
	}
	if err := e.checkEngineerCalendar(ctx, input.EngineerID, start, end); err != nil {
		return nil, err
	}

	price := room.HourlyRate * float64(duration) / 60.0

	return &models.Quote{
		RoomID:  room.ID,
		Start:   start,
		End:     end,
		Price:   price,
		Instant: instantEligible(studio, settings),
	}, nil
}

// fetchEngineerSettings treats a missing user document the same as a user
// who never configured engineer settings: no premium, no instant booking.
func (e *Engine) fetchEngineerSettings(ctx context.Context, engineerID string) (*models.EngineerSettings, error) {
	settings, err := e.EngineerRepo.GetSettings(ctx, engineerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch engineer settings for %s: %w", engineerID, err)
	}
	return settings, nil
}

// resolveRoom returns the explicitly requested room, else the studio's
// default room.
func (e *Engine) resolveRoom(ctx context.Context, studioID, roomID string) (*models.Room, error) {
	if roomID != "" {
		room, err := e.StudioRepo.GetRoom(ctx, studioID, roomID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, NewQuoteError(CodeNoRoomAvailable,
					fmt.Sprintf("room %s does not exist at studio %s", roomID, studioID))
			}
			return nil, fmt.Errorf("failed to fetch room %s: %w", roomID, err)
		}
		return room, nil
	}

	room, err := e.StudioRepo.GetDefaultRoom(ctx, studioID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewQuoteError(CodeNoRoomAvailable,
				fmt.Sprintf("studio %s has no default room", studioID))
		}
		return nil, fmt.Errorf("failed to fetch default room for studio %s: %w", studioID, err)
	}
	return room, nil
}

// checkStudioCalendar rejects the interval when it collides with a hold or
// manual block on the studio's calendar. Room-scoped entries only conflict
// on the same room; entries without a room block the whole studio.
func (e *Engine) checkStudioCalendar(ctx context.Context, studioID, roomID string, start, end time.Time) error {
	entries, err := e.AvailabilityRepo.FindOverlapping(ctx, studioID, start, end)
	if err != nil {
		return fmt.Errorf("failed to check studio availability: %w", err)
	}
	for _, entry := range entries {
		if entry.RoomID != "" && entry.RoomID != roomID {
			continue
		}
		return NewQuoteError(CodeSlotUnavailable,
			fmt.Sprintf("room is no longer free between %s and %s",
				start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}
	return nil
}

func (e *Engine) checkEngineerCalendar(ctx context.Context, engineerID string, start, end time.Time) error {
	entries, err := e.AvailabilityRepo.FindOverlapping(ctx, engineerID, start, end)
	if err != nil {
		return fmt.Errorf("failed to check engineer availability: %w", err)
	}
	if len(entries) > 0 {
		return NewQuoteError(CodeSlotUnavailable,
			fmt.Sprintf("engineer %s is booked between %s and %s", engineerID,
				start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}
	return nil
}

// instantEligible decides auto-confirmation: the studio must auto-approve,
// the engineer must be premium with instant booking switched on, and the
// engineer's home-studio restriction must not exclude this studio.
func instantEligible(studio *models.Studio, settings *models.EngineerSettings) bool {
	if !studio.AutoApproveRequests {
		return false
	}
	if settings == nil || !settings.IsPremium || !settings.InstantBookEnabled {
		return false
	}
	if settings.MainStudioID == "" || settings.MainStudioID == studio.ID {
		return true
	}
	return settings.AllowOtherStudios
}
