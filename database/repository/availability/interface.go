// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"studiolink/database"
	"studiolink/models"
	"studiolink/utils"
)

type AvailabilityRepository interface {
	// UpsertHold writes a booking hold keyed by (owner, source booking).
	// Re-applying the same hold overwrites in place.
	UpsertHold(ctx context.Context, entry *models.AvailabilityEntry) error
	// RemoveHold deletes the hold a booking placed on an owner's calendar.
	// Returns mongo.ErrNoDocuments when no such hold exists.
	RemoveHold(ctx context.Context, ownerID, bookingID string) error
	CreateManualBlock(ctx context.Context, entry *models.AvailabilityEntry) error
	DeleteManualBlock(ctx context.Context, ownerID, entryID string) error
	// FindOverlapping returns every entry on the owner's calendar whose
	// interval intersects [start, end). Abutting entries are excluded.
	FindOverlapping(ctx context.Context, ownerID string, start, end time.Time) ([]models.AvailabilityEntry, error)
	ListForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]models.AvailabilityEntry, error)
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	repo := &mongoAvailabilityRepo{coll: database.DB().Collection("availability")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure availability indexes", zap.Error(err))
	}
	return repo
}
