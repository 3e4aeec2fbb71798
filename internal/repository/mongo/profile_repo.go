package mongo

import (
	"context"
	"errors"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new Profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert replaces the user's profile snapshot, creating it on first save.
// Exactly one profile document is kept per user.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("profile requires a userId")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now

	filter := bson.M{"userId": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"age":              profile.Age,
			"bodyMassKg":       profile.BodyMassKg,
			"fitnessLevel":     profile.FitnessLevel,
			"goals":            profile.Goals,
			"equipment":        profile.Equipment,
			"customEquipment":  profile.CustomEquipment,
			"workoutFrequency": profile.WorkoutFrequency,
			"injuryNotes":      profile.InjuryNotes,
			"updatedAt":        profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"userId":    profile.UserID,
			"createdAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetByUserID retrieves the user's current profile snapshot.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var profile domain.Profile
	filter := bson.M{"userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
