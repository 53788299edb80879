// File: database/repository/engineer/crud.go
package engineerRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studiolink/models"
)

func (r *mongoEngineerRepo) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.UserProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": userID}).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *mongoEngineerRepo) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	profile.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": profile.ID}, profile, opts)
	return err
}

func (r *mongoEngineerRepo) GetSettings(ctx context.Context, userID string) (*models.EngineerSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"engineerSettings": 1})
	var doc struct {
		EngineerSettings *models.EngineerSettings `bson:"engineerSettings"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"id": userID}, opts).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.EngineerSettings, nil
}

func (r *mongoEngineerRepo) UpdateSettings(ctx context.Context, userID string, settings *models.EngineerSettings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{"$set": bson.M{"engineerSettings": settings, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
