package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogCollectionName = "catalog_exercises"

// mongoCatalogRepository implements repository.CatalogRepository.
type mongoCatalogRepository struct {
	collection *mongo.Collection
}

// NewMongoCatalogRepository creates a new Catalog repository.
func NewMongoCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &mongoCatalogRepository{
		collection: db.Collection(catalogCollectionName),
	}
}

// Create inserts a new catalog exercise.
func (r *mongoCatalogRepository) Create(ctx context.Context, exercise *domain.CatalogExercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("catalog exercise requires name and userId")
	}
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted exercise ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single catalog exercise.
func (r *mongoCatalogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CatalogExercise, error) {
	var exercise domain.CatalogExercise
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List retrieves catalog exercises, optionally narrowed by muscle group and a
// case-insensitive name substring.
func (r *mongoCatalogRepository) List(ctx context.Context, filter repository.CatalogFilter) ([]domain.CatalogExercise, error) {
	query := bson.M{}
	if filter.MuscleGroup != "" {
		query["muscleGroup"] = filter.MuscleGroup
	}
	if filter.NameSearch != "" {
		query["name"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.NameSearch),
			"$options": "i",
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.CatalogExercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update rewrites the mutable fields of a catalog exercise.
func (r *mongoCatalogRepository) Update(ctx context.Context, exercise *domain.CatalogExercise) error {
	if exercise.ID == primitive.NilObjectID {
		return errors.New("catalog exercise ID is required for update")
	}

	filter := bson.M{"_id": exercise.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":            exercise.Name,
			"muscleGroup":     exercise.MuscleGroup,
			"description":     exercise.Description,
			"equipmentNeeded": exercise.EquipmentNeeded,
			"mediaObjectKey":  exercise.MediaObjectKey,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCatalogIndexes creates necessary indexes for the catalog collection.
func EnsureCatalogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "muscleGroup", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
