// File: database/repository/studio/interface.go
package studioRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"studiolink/database"
	"studiolink/models"
)

type StudioRepository interface {
	GetByID(ctx context.Context, studioID string) (*models.Studio, error)
	Upsert(ctx context.Context, studio *models.Studio) error
	Delete(ctx context.Context, studioID string) error
	FetchRooms(ctx context.Context, studioID string) ([]models.Room, error)
	GetRoom(ctx context.Context, studioID, roomID string) (*models.Room, error)
	GetDefaultRoom(ctx context.Context, studioID string) (*models.Room, error)
	UpsertRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, studioID, roomID string) error
}

type mongoStudioRepo struct {
	studios *mongo.Collection
	rooms   *mongo.Collection
}

// NewMongoStudioRepo constructs a new MongoDB StudioRepository.
func NewMongoStudioRepo() StudioRepository {
	db := database.DB()
	return &mongoStudioRepo{
		studios: db.Collection("studios"),
		rooms:   db.Collection("rooms"),
	}
}
