// File: database/repository/engineer/interface.go
package engineerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"studiolink/database"
	"studiolink/models"
)

type EngineerRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	// GetSettings returns the user's engineer settings, or nil when the
	// profile exists but the user has never acted as an engineer.
	GetSettings(ctx context.Context, userID string) (*models.EngineerSettings, error)
	UpdateSettings(ctx context.Context, userID string, settings *models.EngineerSettings) error
}

type mongoEngineerRepo struct {
	coll *mongo.Collection
}

// NewMongoEngineerRepo constructs a new MongoDB EngineerRepository backed by
// the users collection.
func NewMongoEngineerRepo() EngineerRepository {
	return &mongoEngineerRepo{coll: database.DB().Collection("users")}
}
