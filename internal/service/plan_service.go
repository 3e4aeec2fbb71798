package service

import (
	"context"
	"errors"
	"fmt"

	"ironlog/workout-app/internal/advisor"
	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/units"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
)

// SetDetailInput is one per-set entry of a user-authored exercise.
// Weights are canonical (kilograms); the API layer converts from display units.
type SetDetailInput struct {
	WeightKg *float64
	Reps     int
}

// PlanExerciseInput is one exercise of a user-authored plan.
type PlanExerciseInput struct {
	Name       string
	Sets       int
	Reps       int
	WeightKg   *float64
	SetDetails []SetDetailInput
}

// PlanService owns the workout plan lifecycle: the generation orchestration
// against the advisory service plus user-authored (custom) plans.
type PlanService interface {
	// GeneratePlans replaces the user's generated plans with a fresh set from
	// the advisory service. It is a no-op returning ErrProfileRequired when
	// the user has no profile. Custom plans are never touched.
	GeneratePlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.Plan, error)
	CreateCustomPlan(ctx context.Context, userID primitive.ObjectID, name string, exercises []PlanExerciseInput) (*domain.Plan, error)
	// ClonePlan copies an existing plan into a new custom plan, exempt from
	// future regeneration deletes.
	ClonePlan(ctx context.Context, userID, planID primitive.ObjectID, name string) (*domain.Plan, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

type planService struct {
	planRepo    repository.PlanRepository
	profileRepo repository.ProfileRepository
	chatLog     *ChatLog
	advisor     advisor.Advisor
	log         *logrus.Entry
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	profileRepo repository.ProfileRepository,
	chatLog *ChatLog,
	adv advisor.Advisor,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		profileRepo: profileRepo,
		chatLog:     chatLog,
		advisor:     adv,
		log:         logrus.WithField("component", "plan_service"),
	}
}

// GeneratePlans runs the regeneration sequence: delete prior generated plans,
// build the advisory context, request and strictly parse a plan array, then
// persist the plans one at a time in response order. Plans written before a
// mid-sequence failure are kept; there is no rollback and no automatic retry.
func (s *planService) GeneratePlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, err
	}

	// Capture the current plan set for context before the generated ones are
	// deleted.
	priorPlans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.DeleteGenerated(ctx, userID); err != nil {
		return nil, err
	}

	messages, err := advisor.BuildContext(profile, s.chatLog.Messages(userID.Hex()), priorPlans)
	if err != nil {
		return nil, err
	}

	reply, err := s.advisor.Complete(ctx, advisor.PlanSystemPrompt, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdvisorFailed, err)
	}

	generated, err := advisor.ParsePlanResponse(reply)
	if err != nil {
		// Nothing from this reply is kept; the earlier delete is not rolled back.
		return nil, fmt.Errorf("%w: %v", ErrInvalidAdvisoryReply, err)
	}

	// Persist sequentially, in response order.
	for _, gp := range generated {
		plan := generatedToPlan(userID, gp)
		if _, err := s.planRepo.Create(ctx, plan); err != nil {
			s.log.WithError(err).WithField("plan", gp.Name).Warn("plan write failed mid-regeneration")
			return nil, fmt.Errorf("%w: %q: %v", ErrPersistenceFailed, gp.Name, err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"userId": userID.Hex(),
		"plans":  len(generated),
	}).Info("plan set regenerated")

	// Refresh the plan set from the store.
	return s.planRepo.GetByUserID(ctx, userID)
}

// generatedToPlan converts a parsed advisory plan into the persisted form,
// crossing the mass-unit boundary (the advisor speaks display units).
func generatedToPlan(userID primitive.ObjectID, gp advisor.GeneratedPlan) *domain.Plan {
	exercises := make([]domain.Exercise, 0, len(gp.Exercises))
	for _, ge := range gp.Exercises {
		exercises = append(exercises, domain.Exercise{
			Name:     ge.Name,
			Sets:     ge.Sets,
			Reps:     ge.Reps,
			WeightKg: units.KgPtrFromPounds(ge.Weight),
		})
	}
	return &domain.Plan{
		UserID:    userID,
		Name:      gp.Name,
		Exercises: exercises,
		IsCustom:  false,
	}
}

// ListPlans retrieves all plans of a user, newest first.
func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

// GetPlan retrieves a single plan, ensuring the user owns it.
func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// CreateCustomPlan persists a user-authored plan. When an exercise carries
// set details, their length is the authoritative set count and the summary
// fields are derived from the first set.
func (s *planService) CreateCustomPlan(ctx context.Context, userID primitive.ObjectID, name string, inputs []PlanExerciseInput) (*domain.Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: plan name is required", ErrValidationFailed)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: plan needs at least one exercise", ErrValidationFailed)
	}

	exercises := make([]domain.Exercise, 0, len(inputs))
	for _, in := range inputs {
		ex, err := exerciseFromInput(in)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}

	plan := &domain.Plan{
		UserID:    userID,
		Name:      name,
		Exercises: exercises,
		IsCustom:  true,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID)
}

func exerciseFromInput(in PlanExerciseInput) (domain.Exercise, error) {
	if in.Name == "" {
		return domain.Exercise{}, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}

	ex := domain.Exercise{
		Name:     in.Name,
		Sets:     in.Sets,
		Reps:     in.Reps,
		WeightKg: in.WeightKg,
	}

	if len(in.SetDetails) > 0 {
		ex.SetDetails = make([]domain.SetDetail, 0, len(in.SetDetails))
		for _, sd := range in.SetDetails {
			if sd.Reps < 1 {
				return domain.Exercise{}, fmt.Errorf("%w: set reps must be >= 1", ErrValidationFailed)
			}
			ex.SetDetails = append(ex.SetDetails, domain.SetDetail{
				WeightKg: sd.WeightKg,
				Reps:     sd.Reps,
			})
		}
		// Summary fields are derived from the first set.
		ex.Sets = len(ex.SetDetails)
		ex.Reps = ex.SetDetails[0].Reps
		ex.WeightKg = ex.SetDetails[0].WeightKg
		return ex, nil
	}

	if ex.Sets < 1 {
		return domain.Exercise{}, fmt.Errorf("%w: sets must be >= 1", ErrValidationFailed)
	}
	if ex.Reps < 1 {
		return domain.Exercise{}, fmt.Errorf("%w: reps must be >= 1", ErrValidationFailed)
	}
	return ex, nil
}

// ClonePlan copies an existing plan (typically a generated one) into a new
// custom plan so it survives future regenerations.
func (s *planService) ClonePlan(ctx context.Context, userID, planID primitive.ObjectID, name string) (*domain.Plan, error) {
	source, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = source.Name
	}

	clone := &domain.Plan{
		UserID:    userID,
		Name:      name,
		Exercises: source.Exercises,
		IsCustom:  true,
	}
	cloneID, err := s.planRepo.Create(ctx, clone)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, cloneID)
}

// DeletePlan removes a single plan owned by the user.
func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}
