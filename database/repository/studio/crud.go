// File: database/repository/studio/crud.go
package studioRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studiolink/models"
)

func (r *mongoStudioRepo) GetByID(ctx context.Context, studioID string) (*models.Studio, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var studio models.Studio
	if err := r.studios.FindOne(ctx, bson.M{"id": studioID}).Decode(&studio); err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *mongoStudioRepo) Upsert(ctx context.Context, studio *models.Studio) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if studio.ID == "" {
		studio.ID = uuid.New().String()
		studio.CreatedAt = time.Now()
	}
	studio.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.studios.ReplaceOne(ctx, bson.M{"id": studio.ID}, studio, opts)
	return err
}

func (r *mongoStudioRepo) Delete(ctx context.Context, studioID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.studios.DeleteOne(ctx, bson.M{"id": studioID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	// Rooms are exclusively owned by their studio.
	_, err = r.rooms.DeleteMany(ctx, bson.M{"studioId": studioID})
	return err
}

func (r *mongoStudioRepo) FetchRooms(ctx context.Context, studioID string) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.rooms.Find(ctx, bson.M{"studioId": studioID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *mongoStudioRepo) GetRoom(ctx context.Context, studioID, roomID string) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	err := r.rooms.FindOne(ctx, bson.M{"id": roomID, "studioId": studioID}).Decode(&room)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *mongoStudioRepo) GetDefaultRoom(ctx context.Context, studioID string) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	err := r.rooms.FindOne(ctx, bson.M{"studioId": studioID, "isDefault": true}).Decode(&room)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *mongoStudioRepo) UpsertRoom(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if room.ID == "" {
		room.ID = uuid.New().String()
	}

	// A studio carries exactly one default room.
	if room.IsDefault {
		_, err := r.rooms.UpdateMany(ctx,
			bson.M{"studioId": room.StudioID, "id": bson.M{"$ne": room.ID}},
			bson.M{"$set": bson.M{"isDefault": false}},
		)
		if err != nil {
			return err
		}
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.rooms.ReplaceOne(ctx, bson.M{"id": room.ID}, room, opts)
	return err
}

func (r *mongoStudioRepo) DeleteRoom(ctx context.Context, studioID, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.rooms.DeleteOne(ctx, bson.M{"id": roomID, "studioId": studioID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
