// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studiolink/models"
)

func (r *mongoAvailabilityRepo) UpsertHold(ctx context.Context, entry *models.AvailabilityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	entry.ID = models.HoldID(entry.OwnerID, entry.SourceBookingID)
	entry.Kind = models.KindBookingHold
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": entry.ID}, entry, opts)
	return err
}

func (r *mongoAvailabilityRepo) RemoveHold(ctx context.Context, ownerID, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": models.HoldID(ownerID, bookingID)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) CreateManualBlock(ctx context.Context, entry *models.AvailabilityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.Kind = models.KindManualBlock
	entry.SourceBookingID = ""
	entry.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

func (r *mongoAvailabilityRepo) DeleteManualBlock(ctx context.Context, ownerID, entryID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": entryID, "ownerId": ownerID, "kind": models.KindManualBlock}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) FindOverlapping(ctx context.Context, ownerID string, start, end time.Time) ([]models.AvailabilityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Half-open interval intersection: entry.start < end AND entry.end > start.
	filter := bson.M{
		"ownerId": ownerID,
		"start":   bson.M{"$lt": end},
		"end":     bson.M{"$gt": start},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.AvailabilityEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoAvailabilityRepo) ListForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]models.AvailabilityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"ownerId": ownerID,
		"start":   bson.M{"$lt": to},
		"end":     bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.M{"start": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.AvailabilityEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
