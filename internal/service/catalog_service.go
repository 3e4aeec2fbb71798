package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExerciseNotFound = errors.New("catalog exercise not found")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
	ErrDownloadURLError = errors.New("failed to generate download URL")
	ErrNoMediaAttached  = errors.New("exercise has no demo media")
)

// CatalogExerciseInput carries the data for creating a reference exercise.
type CatalogExerciseInput struct {
	Name            string
	MuscleGroup     domain.MuscleGroup
	Description     string
	EquipmentNeeded []string
}

// UploadURLResponse contains the presigned URL and the object key the client
// must report back once the upload finished.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// CatalogService manages the shared exercise reference library and its
// demonstration media.
type CatalogService interface {
	CreateExercise(ctx context.Context, userID primitive.ObjectID, input CatalogExerciseInput) (*domain.CatalogExercise, error)
	GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.CatalogExercise, error)
	ListExercises(ctx context.Context, filter repository.CatalogFilter) ([]domain.CatalogExercise, error)
	// RequestMediaUploadURL returns a presigned PUT URL for attaching demo
	// media to an exercise. The file goes straight to object storage.
	RequestMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	// ConfirmMediaUpload records the uploaded object key on the exercise.
	ConfirmMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.CatalogExercise, error)
	// GetMediaDownloadURL returns a presigned GET URL for the exercise's media.
	GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	fileStorage storage.MediaStorage
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository, fileStorage storage.MediaStorage) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		fileStorage: fileStorage,
	}
}

func (s *catalogService) CreateExercise(ctx context.Context, userID primitive.ObjectID, input CatalogExerciseInput) (*domain.CatalogExercise, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	if !domain.ValidMuscleGroup(input.MuscleGroup) {
		return nil, fmt.Errorf("%w: unknown muscle group %q", ErrValidationFailed, input.MuscleGroup)
	}

	now := time.Now()
	exercise := &domain.CatalogExercise{
		UserID:          userID,
		Name:            name,
		MuscleGroup:     input.MuscleGroup,
		Description:     strings.TrimSpace(input.Description),
		EquipmentNeeded: input.EquipmentNeeded,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.catalogRepo.Create(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("%w: saving exercise: %v", ErrPersistenceFailed, err)
	}
	exercise.ID = id
	return exercise, nil
}

func (s *catalogService) GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.CatalogExercise, error) {
	exercise, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) ListExercises(ctx context.Context, filter repository.CatalogFilter) ([]domain.CatalogExercise, error) {
	if filter.MuscleGroup != "" && !domain.ValidMuscleGroup(filter.MuscleGroup) {
		return nil, fmt.Errorf("%w: unknown muscle group %q", ErrValidationFailed, filter.MuscleGroup)
	}
	return s.catalogRepo.List(ctx, filter)
}

func (s *catalogService) RequestMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	// Unique object key so re-uploads never collide with stale media.
	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("catalog", exercise.ID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

func (s *catalogService) ConfirmMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.CatalogExercise, error) {
	if objectKey == "" {
		return nil, fmt.Errorf("%w: object key is required", ErrValidationFailed)
	}
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	// Drop the previous object so storage does not accumulate orphans. A
	// delete failure is not fatal to the confirm.
	if exercise.MediaObjectKey != "" && exercise.MediaObjectKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, exercise.MediaObjectKey)
	}

	exercise.MediaObjectKey = objectKey
	exercise.UpdatedAt = time.Now()
	if err := s.catalogRepo.Update(ctx, exercise); err != nil {
		return nil, fmt.Errorf("%w: updating exercise: %v", ErrPersistenceFailed, err)
	}
	return exercise, nil
}

func (s *catalogService) GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.MediaObjectKey == "" {
		return "", ErrNoMediaAttached
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}
