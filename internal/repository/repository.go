package repository

import (
	"context"

	"ironlog/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores the single current fitness snapshot per user.
type ProfileRepository interface {
	// Upsert replaces the user's profile, creating it on first save.
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
}

// PlanRepository defines the interface for interacting with workout plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	// GetByUserID returns all plans of a user, newest first.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	// DeleteGenerated removes all plans of the user with isCustom=false.
	// Custom plans are never touched by this call.
	DeleteGenerated(ctx context.Context, userID primitive.ObjectID) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// HistoryRepository stores immutable workout history records.
type HistoryRepository interface {
	Create(ctx context.Context, record *domain.HistoryRecord) (primitive.ObjectID, error)
	// GetByUserID returns the user's records ordered by completedAt descending.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryRecord, error)
}

// CatalogFilter narrows catalog exercise listings.
type CatalogFilter struct {
	MuscleGroup domain.MuscleGroup // empty means all groups
	NameSearch  string             // case-insensitive substring match, empty means all
}

// CatalogRepository defines the interface for the exercise reference library.
type CatalogRepository interface {
	Create(ctx context.Context, exercise *domain.CatalogExercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CatalogExercise, error)
	List(ctx context.Context, filter CatalogFilter) ([]domain.CatalogExercise, error)
	Update(ctx context.Context, exercise *domain.CatalogExercise) error
}
