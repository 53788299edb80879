package booking

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"studiolink/events"
	"studiolink/models"
)

// In-memory repositories for exercising the quote engine and booking
// service without a database.

type fakeStudioRepo struct {
	studios map[string]models.Studio
	rooms   []models.Room
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id string) (*models.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &s, nil
}

func (f *fakeStudioRepo) Upsert(_ context.Context, s *models.Studio) error {
	if f.studios == nil {
		f.studios = map[string]models.Studio{}
	}
	f.studios[s.ID] = *s
	return nil
}

func (f *fakeStudioRepo) Delete(_ context.Context, id string) error {
	delete(f.studios, id)
	return nil
}

func (f *fakeStudioRepo) FetchRooms(_ context.Context, studioID string) ([]models.Room, error) {
	var out []models.Room
	for _, r := range f.rooms {
		if r.StudioID == studioID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStudioRepo) GetRoom(_ context.Context, studioID, roomID string) (*models.Room, error) {
	for _, r := range f.rooms {
		if r.StudioID == studioID && r.ID == roomID {
			room := r
			return &room, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStudioRepo) GetDefaultRoom(_ context.Context, studioID string) (*models.Room, error) {
	for _, r := range f.rooms {
		if r.StudioID == studioID && r.IsDefault {
			room := r
			return &room, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStudioRepo) UpsertRoom(_ context.Context, room *models.Room) error {
	f.rooms = append(f.rooms, *room)
	return nil
}

func (f *fakeStudioRepo) DeleteRoom(_ context.Context, studioID, roomID string) error {
	for i, r := range f.rooms {
		if r.StudioID == studioID && r.ID == roomID {
			f.rooms = append(f.rooms[:i], f.rooms[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeEngineerRepo struct {
	profiles map[string]models.UserProfile
}

func (f *fakeEngineerRepo) GetProfile(_ context.Context, id string) (*models.UserProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakeEngineerRepo) SaveProfile(_ context.Context, p *models.UserProfile) error {
	if f.profiles == nil {
		f.profiles = map[string]models.UserProfile{}
	}
	f.profiles[p.ID] = *p
	return nil
}

func (f *fakeEngineerRepo) GetSettings(_ context.Context, id string) (*models.EngineerSettings, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p.EngineerSettings, nil
}

func (f *fakeEngineerRepo) UpdateSettings(_ context.Context, id string, s *models.EngineerSettings) error {
	p, ok := f.profiles[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.EngineerSettings = s
	f.profiles[id] = p
	return nil
}

type fakeAvailabilityRepo struct {
	entries map[string]models.AvailabilityEntry
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{entries: map[string]models.AvailabilityEntry{}}
}

func (f *fakeAvailabilityRepo) UpsertHold(_ context.Context, e *models.AvailabilityEntry) error {
	e.ID = models.HoldID(e.OwnerID, e.SourceBookingID)
	e.Kind = models.KindBookingHold
	f.entries[e.ID] = *e
	return nil
}

func (f *fakeAvailabilityRepo) RemoveHold(_ context.Context, ownerID, bookingID string) error {
	id := models.HoldID(ownerID, bookingID)
	if _, ok := f.entries[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeAvailabilityRepo) CreateManualBlock(_ context.Context, e *models.AvailabilityEntry) error {
	if e.ID == "" {
		e.ID = "block-" + e.OwnerID + e.Start.Format(time.RFC3339)
	}
	e.Kind = models.KindManualBlock
	f.entries[e.ID] = *e
	return nil
}

func (f *fakeAvailabilityRepo) DeleteManualBlock(_ context.Context, ownerID, entryID string) error {
	e, ok := f.entries[entryID]
	if !ok || e.OwnerID != ownerID {
		return mongo.ErrNoDocuments
	}
	delete(f.entries, entryID)
	return nil
}

func (f *fakeAvailabilityRepo) FindOverlapping(_ context.Context, ownerID string, start, end time.Time) ([]models.AvailabilityEntry, error) {
	var out []models.AvailabilityEntry
	for _, e := range f.entries {
		if e.OwnerID == ownerID && e.Overlaps(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListForOwner(_ context.Context, ownerID string, from, to time.Time) ([]models.AvailabilityEntry, error) {
	return f.FindOverlapping(nil, ownerID, from, to)
}

type fakeBookingRepo struct {
	bookings map[string]models.Booking
	nextID   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]models.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	if b.ID == "" {
		f.nextID++
		b.ID = fmt.Sprintf("booking-%d", f.nextID)
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &b, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *models.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	b.UpdatedAt = time.Now()
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.bookings[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) ListForArtist(_ context.Context, artistID string, _ int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ArtistID == artistID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListForStudio(_ context.Context, studioID string, _ int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.StudioID == studioID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindConfirmedEndedBefore(_ context.Context, cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		end := b.RequestedEnd
		if b.ConfirmedEnd != nil {
			end = *b.ConfirmedEnd
		}
		if end.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakePublisher records published events in order.
type fakePublisher struct {
	published []events.BookingChanged
	failNext  bool
}

func (f *fakePublisher) PublishBookingChanged(_ context.Context, ev events.BookingChanged) error {
	if f.failNext {
		f.failNext = false
		return context.DeadlineExceeded
	}
	f.published = append(f.published, ev)
	return nil
}
