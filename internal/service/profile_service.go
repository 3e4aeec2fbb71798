package service

import (
	"context"
	"errors"
	"fmt"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileInput carries the user-editable profile fields. BodyMassKg arrives
// already converted to the canonical unit by the API layer.
type ProfileInput struct {
	Age              int
	BodyMassKg       float64
	FitnessLevel     domain.FitnessLevel
	Goals            []string
	Equipment        []string
	CustomEquipment  []string
	WorkoutFrequency int
	InjuryNotes      string
}

// ProfileService manages the single current fitness snapshot per user.
type ProfileService interface {
	SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// SaveProfile validates and upserts the user's profile snapshot.
func (s *profileService) SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.Profile, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:           userID,
		Age:              input.Age,
		BodyMassKg:       input.BodyMassKg,
		FitnessLevel:     input.FitnessLevel,
		Goals:            input.Goals,
		Equipment:        input.Equipment,
		CustomEquipment:  input.CustomEquipment,
		WorkoutFrequency: input.WorkoutFrequency,
		InjuryNotes:      input.InjuryNotes,
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	// Fetch again so the stored timestamps are populated.
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetProfile retrieves the user's current profile snapshot.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func validateProfileInput(input ProfileInput) error {
	if input.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrValidationFailed)
	}
	if input.BodyMassKg <= 0 {
		return fmt.Errorf("%w: body mass must be positive", ErrValidationFailed)
	}
	switch input.FitnessLevel {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return fmt.Errorf("%w: unknown fitness level %q", ErrValidationFailed, input.FitnessLevel)
	}
	if input.WorkoutFrequency < 1 || input.WorkoutFrequency > 7 {
		return fmt.Errorf("%w: workout frequency must be between 1 and 7", ErrValidationFailed)
	}
	return nil
}
