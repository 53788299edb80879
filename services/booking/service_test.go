package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiolink/models"
)

func newTestService() (*DefaultBookingService, *fakeStudioRepo, *fakeEngineerRepo, *fakeAvailabilityRepo, *fakeBookingRepo, *fakePublisher) {
	engine, studios, engineers, avail := newTestEngine()
	repo := newFakeBookingRepo()
	publisher := &fakePublisher{}
	svc := &DefaultBookingService{Engine: engine, Repo: repo, Publisher: publisher}
	return svc, studios, engineers, avail, repo, publisher
}

// mirrorHolds plays the synchronizer's part: after a confirmation it writes
// one hold per calendar owner so later quotes see the slot as taken.
func mirrorHolds(t *testing.T, avail *fakeAvailabilityRepo, b *models.Booking) {
	t.Helper()
	for _, ownerID := range []string{b.StudioID, b.EngineerID} {
		err := avail.UpsertHold(context.Background(), &models.AvailabilityEntry{
			OwnerID:         ownerID,
			Start:           *b.ConfirmedStart,
			End:             *b.ConfirmedEnd,
			StudioID:        b.StudioID,
			RoomID:          b.RoomID,
			SourceBookingID: b.ID,
		})
		if err != nil {
			t.Fatalf("UpsertHold failed: %v", err)
		}
	}
}

func TestSubmitInstant(t *testing.T) {
	svc, _, _, _, repo, publisher := newTestService()
	start := time.Now().Add(time.Hour).Truncate(time.Minute)

	booking, err := svc.Submit(context.Background(), testInput(start))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if booking.Status != models.BookingConfirmed {
		t.Errorf("expected confirmed, got %s", booking.Status)
	}
	if booking.ConfirmedStart == nil || !booking.ConfirmedStart.Equal(start) {
		t.Errorf("expected confirmed start %v, got %v", start, booking.ConfirmedStart)
	}
	if booking.ConfirmedEnd == nil || !booking.ConfirmedEnd.Equal(start.Add(2*time.Hour)) {
		t.Errorf("expected confirmed end %v, got %v", start.Add(2*time.Hour), booking.ConfirmedEnd)
	}
	if booking.TotalPrice != 180 {
		t.Errorf("expected price 180, got %v", booking.TotalPrice)
	}

	stored, err := repo.GetByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if stored.Status != models.BookingConfirmed {
		t.Errorf("persisted status = %s, want confirmed", stored.Status)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publisher.published))
	}
	ev := publisher.published[0]
	if ev.Before != nil {
		t.Error("expected nil before-snapshot on create")
	}
	if ev.After == nil || ev.After.ID != booking.ID {
		t.Errorf("after-snapshot does not match created booking: %+v", ev.After)
	}
}

func TestSubmitPending(t *testing.T) {
	svc, studios, _, _, _, publisher := newTestService()
	studio := studios.studios[testStudioID]
	studio.AutoApproveRequests = false
	studios.studios[testStudioID] = studio
	start := time.Now().Add(time.Hour)

	booking, err := svc.Submit(context.Background(), testInput(start))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if booking.Status != models.BookingPending {
		t.Errorf("expected pending, got %s", booking.Status)
	}
	if booking.ConfirmedStart != nil || booking.ConfirmedEnd != nil {
		t.Error("pending booking must not carry confirmed times")
	}
	if len(publisher.published) != 1 || publisher.published[0].After.Status != models.BookingPending {
		t.Errorf("expected one pending-create event, got %+v", publisher.published)
	}
}

func TestSubmitRejectsFilledSlot(t *testing.T) {
	svc, _, _, avail, _, _ := newTestService()
	start := time.Now().Add(time.Hour).Truncate(time.Minute)

	first, err := svc.Submit(context.Background(), testInput(start))
	if err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}
	mirrorHolds(t, avail, first)

	_, err = svc.Submit(context.Background(), testInput(start))
	if QuoteCode(err) != CodeSlotUnavailable {
		t.Errorf("expected %s on second submission, got %v", CodeSlotUnavailable, err)
	}

	// A session right after the first one still goes through.
	later := testInput(start.Add(2 * time.Hour))
	if _, err := svc.Submit(context.Background(), later); err != nil {
		t.Errorf("abutting submission failed: %v", err)
	}
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	svc, _, _, _, repo, publisher := newTestService()
	publisher.failNext = true

	booking, err := svc.Submit(context.Background(), testInput(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Submit must not fail on publish error, got: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), booking.ID); err != nil {
		t.Errorf("booking not persisted: %v", err)
	}
}

func TestApprove(t *testing.T) {
	svc, studios, _, _, _, publisher := newTestService()
	studio := studios.studios[testStudioID]
	studio.AutoApproveRequests = false
	studios.studios[testStudioID] = studio

	booking, err := svc.Submit(context.Background(), testInput(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	approved, err := svc.Approve(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if approved.Status != models.BookingConfirmed {
		t.Errorf("expected confirmed, got %s", approved.Status)
	}
	if approved.ConfirmedStart == nil || !approved.ConfirmedStart.Equal(booking.RequestedStart) {
		t.Errorf("confirmed start %v does not match requested %v", approved.ConfirmedStart, booking.RequestedStart)
	}
	if approved.ConfirmedEnd == nil || !approved.ConfirmedEnd.Equal(booking.RequestedEnd) {
		t.Errorf("confirmed end %v does not match requested %v", approved.ConfirmedEnd, booking.RequestedEnd)
	}

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 events, got %d", len(publisher.published))
	}
	ev := publisher.published[1]
	if ev.Before == nil || ev.Before.Status != models.BookingPending {
		t.Errorf("expected pending before-snapshot, got %+v", ev.Before)
	}
	if ev.After == nil || ev.After.Status != models.BookingConfirmed {
		t.Errorf("expected confirmed after-snapshot, got %+v", ev.After)
	}

	// A second approval must fail: the booking is no longer pending.
	if _, err := svc.Approve(context.Background(), booking.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on double approve, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	svc, _, _, _, _, publisher := newTestService()

	booking, err := svc.Submit(context.Background(), testInput(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}

	ev := publisher.published[len(publisher.published)-1]
	if ev.Before == nil || ev.Before.Status != models.BookingConfirmed {
		t.Errorf("expected confirmed before-snapshot, got %+v", ev.Before)
	}

	if _, err := svc.Cancel(context.Background(), booking.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition cancelling a cancelled booking, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	booking, err := svc.Submit(context.Background(), testInput(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	completed, err := svc.Complete(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if completed.Status != models.BookingCompleted {
		t.Errorf("expected completed, got %s", completed.Status)
	}

	if _, err := svc.Complete(context.Background(), booking.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition completing a completed booking, got %v", err)
	}
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	svc, studios, _, _, _, _ := newTestService()
	studio := studios.studios[testStudioID]
	studio.AutoApproveRequests = false
	studios.studios[testStudioID] = studio

	booking, err := svc.Submit(context.Background(), testInput(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if _, err := svc.Complete(context.Background(), booking.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition completing a pending booking, got %v", err)
	}
}

func TestListForArtist(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	start := time.Now().Add(time.Hour)

	first, err := svc.Submit(context.Background(), testInput(start))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), testInput(start.Add(3*time.Hour))); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	mine, err := svc.ListForArtist(context.Background(), testArtistID, 10)
	if err != nil {
		t.Fatalf("ListForArtist returned error: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 bookings for %s, got %d", testArtistID, len(mine))
	}
	if mine[0].ID != first.ID && mine[1].ID != first.ID {
		t.Errorf("listing does not contain booking %s", first.ID)
	}

	none, err := svc.ListForArtist(context.Background(), "someone-else", 10)
	if err != nil {
		t.Fatalf("ListForArtist returned error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no bookings for a stranger, got %d", len(none))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}
