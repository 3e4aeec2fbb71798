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

const historyCollectionName = "workout_history"

// mongoHistoryRepository implements repository.HistoryRepository.
// Records are insert-only; there is deliberately no update or delete.
type mongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new History repository.
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	return &mongoHistoryRepository{
		collection: db.Collection(historyCollectionName),
	}
}

// Create inserts a new history record.
func (r *mongoHistoryRepository) Create(ctx context.Context, record *domain.HistoryRecord) (primitive.ObjectID, error) {
	if record.UserID == primitive.NilObjectID || record.PlanName == "" {
		return primitive.NilObjectID, errors.New("history record requires userId and planName")
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted record ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves the user's records ordered by completedAt descending.
func (r *mongoHistoryRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryRecord, error) {
	var records []domain.HistoryRecord
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureHistoryIndexes creates necessary indexes for the history collection.
func EnsureHistoryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: a user's records newest first
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
