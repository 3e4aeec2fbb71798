package service

import (
	"context"
	"testing"

	"ironlog/workout-app/internal/advisor"
	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePlanRepo struct {
	plans []domain.Plan

	// createErr, when set, is returned by Create after createsBeforeErr
	// successful writes.
	createErr        error
	createsBeforeErr int
	creates          int
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if r.createErr != nil && r.creates >= r.createsBeforeErr {
		return primitive.NilObjectID, r.createErr
	}
	r.creates++
	stored := *plan
	stored.ID = primitive.NewObjectID()
	r.plans = append(r.plans, stored)
	return stored.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	for i := range r.plans {
		if r.plans[i].ID == id {
			plan := r.plans[i]
			return &plan, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByUserID returns newest first, mirroring the store's sort order.
func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	var out []domain.Plan
	for i := len(r.plans) - 1; i >= 0; i-- {
		if r.plans[i].UserID == userID {
			out = append(out, r.plans[i])
		}
	}
	return out, nil
}

func (r *fakePlanRepo) DeleteGenerated(_ context.Context, userID primitive.ObjectID) error {
	kept := r.plans[:0]
	for _, p := range r.plans {
		if p.UserID == userID && !p.IsCustom {
			continue
		}
		kept = append(kept, p)
	}
	r.plans = kept
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i := range r.plans {
		if r.plans[i].ID == id && r.plans[i].UserID == userID {
			r.plans = append(r.plans[:i], r.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeProfileRepo struct {
	profile *domain.Profile
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	r.profile = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	if r.profile == nil || r.profile.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return r.profile, nil
}

type fakeAdvisor struct {
	reply string
	err   error
	calls int
}

func (a *fakeAdvisor) Complete(_ context.Context, _ string, _ []advisor.Message) (string, error) {
	a.calls++
	return a.reply, a.err
}

func newTestProfile(userID primitive.ObjectID) *domain.Profile {
	return &domain.Profile{
		UserID:           userID,
		Age:              30,
		BodyMassKg:       80,
		FitnessLevel:     domain.LevelIntermediate,
		Goals:            []string{"strength"},
		Equipment:        []string{"barbell"},
		WorkoutFrequency: 3,
	}
}

func TestGeneratePlansRequiresProfile(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	planRepo.plans = append(planRepo.plans, domain.Plan{
		ID: primitive.NewObjectID(), UserID: userID, Name: "Old", IsCustom: false,
	})
	adv := &fakeAdvisor{}
	svc := NewPlanService(planRepo, &fakeProfileRepo{}, NewChatLog(), adv)

	plans, err := svc.GeneratePlans(context.Background(), userID)
	require.ErrorIs(t, err, ErrProfileRequired)
	assert.Nil(t, plans)
	assert.Zero(t, adv.calls, "advisor must not be called without a profile")
	assert.Len(t, planRepo.plans, 1, "existing plans must be untouched")
}

func TestGeneratePlansKeepsCustomPlans(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	planRepo.plans = append(planRepo.plans,
		domain.Plan{ID: primitive.NewObjectID(), UserID: userID, Name: "My Custom Split", IsCustom: true},
		domain.Plan{ID: primitive.NewObjectID(), UserID: userID, Name: "Stale Generated", IsCustom: false},
	)
	adv := &fakeAdvisor{reply: `[{"name":"Push Day","exercises":[{"name":"Bench Press","sets":3,"reps":8,"weight":220.462}]}]`}
	svc := NewPlanService(planRepo, &fakeProfileRepo{profile: newTestProfile(userID)}, NewChatLog(), adv)

	plans, err := svc.GeneratePlans(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	var names []string
	for _, p := range plans {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "My Custom Split", "custom plans survive regeneration")
	assert.Contains(t, names, "Push Day")
	assert.NotContains(t, names, "Stale Generated", "generated plans are replaced")

	for _, p := range plans {
		if p.Name != "Push Day" {
			continue
		}
		assert.False(t, p.IsCustom)
		require.Len(t, p.Exercises, 1)
		require.NotNil(t, p.Exercises[0].WeightKg)
		// The advisor speaks pounds; storage is kilograms.
		assert.InDelta(t, 100.0, *p.Exercises[0].WeightKg, 0.001)
	}
}

func TestGeneratePlansMalformedReply(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	planRepo.plans = append(planRepo.plans,
		domain.Plan{ID: primitive.NewObjectID(), UserID: userID, Name: "Custom", IsCustom: true},
		domain.Plan{ID: primitive.NewObjectID(), UserID: userID, Name: "Generated", IsCustom: false},
	)
	adv := &fakeAdvisor{reply: `here are some workouts for you!`}
	svc := NewPlanService(planRepo, &fakeProfileRepo{profile: newTestProfile(userID)}, NewChatLog(), adv)

	_, err := svc.GeneratePlans(context.Background(), userID)
	require.ErrorIs(t, err, ErrInvalidAdvisoryReply)

	// The delete of generated plans is not rolled back; custom plans remain.
	remaining, err := planRepo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Custom", remaining[0].Name)
}

func TestGeneratePlansPersistsInResponseOrder(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	adv := &fakeAdvisor{reply: `[
		{"name":"Push Day","exercises":[{"name":"Bench Press","sets":3,"reps":8}]},
		{"name":"Pull Day","exercises":[{"name":"Barbell Row","sets":3,"reps":8}]},
		{"name":"Leg Day","exercises":[{"name":"Back Squat","sets":3,"reps":5}]}
	]`}
	svc := NewPlanService(planRepo, &fakeProfileRepo{profile: newTestProfile(userID)}, NewChatLog(), adv)

	plans, err := svc.GeneratePlans(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	// The store sees one write per plan, in response order.
	require.Len(t, planRepo.plans, 3)
	assert.Equal(t, "Push Day", planRepo.plans[0].Name)
	assert.Equal(t, "Pull Day", planRepo.plans[1].Name)
	assert.Equal(t, "Leg Day", planRepo.plans[2].Name)
}

func TestGeneratePlansPartialPersistenceKept(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	planRepo.plans = append(planRepo.plans,
		domain.Plan{ID: primitive.NewObjectID(), UserID: userID, Name: "My Custom Split", IsCustom: true},
	)
	// The second write fails; the first generated plan is already persisted.
	planRepo.createErr = assert.AnError
	planRepo.createsBeforeErr = 1
	adv := &fakeAdvisor{reply: `[
		{"name":"Push Day","exercises":[{"name":"Bench Press","sets":3,"reps":8}]},
		{"name":"Pull Day","exercises":[{"name":"Barbell Row","sets":3,"reps":8}]}
	]`}
	svc := NewPlanService(planRepo, &fakeProfileRepo{profile: newTestProfile(userID)}, NewChatLog(), adv)

	_, err := svc.GeneratePlans(context.Background(), userID)
	require.ErrorIs(t, err, ErrPersistenceFailed)

	// No rollback: the plan written before the failure remains, next to the
	// custom plan.
	remaining, err := planRepo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	var names []string
	for _, p := range remaining {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "My Custom Split")
	assert.Contains(t, names, "Push Day")
	assert.NotContains(t, names, "Pull Day")
}

func TestGeneratePlansAdvisorFailure(t *testing.T) {
	userID := primitive.NewObjectID()
	adv := &fakeAdvisor{err: assert.AnError}
	svc := NewPlanService(&fakePlanRepo{}, &fakeProfileRepo{profile: newTestProfile(userID)}, NewChatLog(), adv)

	_, err := svc.GeneratePlans(context.Background(), userID)
	require.ErrorIs(t, err, ErrAdvisorFailed)
}

func TestCreateCustomPlanFromSetDetails(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	svc := NewPlanService(planRepo, &fakeProfileRepo{}, NewChatLog(), &fakeAdvisor{})

	w1, w2 := 60.0, 70.0
	plan, err := svc.CreateCustomPlan(context.Background(), userID, "Squat Day", []PlanExerciseInput{
		{
			Name: "Back Squat",
			SetDetails: []SetDetailInput{
				{WeightKg: &w1, Reps: 8},
				{WeightKg: &w2, Reps: 5},
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, plan.IsCustom)
	require.Len(t, plan.Exercises, 1)

	ex := plan.Exercises[0]
	assert.Equal(t, 2, ex.Sets, "set count derived from the details")
	assert.Equal(t, 8, ex.Reps, "summary reps taken from the first set")
	require.NotNil(t, ex.WeightKg)
	assert.Equal(t, w1, *ex.WeightKg)
	assert.Equal(t, 2, ex.TotalSets())
}

func TestCreateCustomPlanValidation(t *testing.T) {
	svc := NewPlanService(&fakePlanRepo{}, &fakeProfileRepo{}, NewChatLog(), &fakeAdvisor{})
	userID := primitive.NewObjectID()

	_, err := svc.CreateCustomPlan(context.Background(), userID, "", []PlanExerciseInput{{Name: "Row", Sets: 3, Reps: 10}})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateCustomPlan(context.Background(), userID, "Pull Day", nil)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateCustomPlan(context.Background(), userID, "Pull Day", []PlanExerciseInput{{Name: "Row", Sets: 0, Reps: 10}})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestClonePlanBecomesCustom(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	sourceID, err := planRepo.Create(context.Background(), &domain.Plan{
		UserID:    userID,
		Name:      "Generated Leg Day",
		Exercises: []domain.Exercise{{Name: "Lunge", Sets: 3, Reps: 12}},
		IsCustom:  false,
	})
	require.NoError(t, err)
	svc := NewPlanService(planRepo, &fakeProfileRepo{}, NewChatLog(), &fakeAdvisor{})

	clone, err := svc.ClonePlan(context.Background(), userID, sourceID, "")
	require.NoError(t, err)
	assert.True(t, clone.IsCustom)
	assert.Equal(t, "Generated Leg Day", clone.Name)
	assert.NotEqual(t, sourceID, clone.ID)

	// After a regeneration wipe of generated plans, the clone survives.
	require.NoError(t, planRepo.DeleteGenerated(context.Background(), userID))
	remaining, err := planRepo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, clone.ID, remaining[0].ID)
}

func TestGetPlanEnforcesOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	planID, err := planRepo.Create(context.Background(), &domain.Plan{UserID: owner, Name: "Mine", IsCustom: true})
	require.NoError(t, err)
	svc := NewPlanService(planRepo, &fakeProfileRepo{}, NewChatLog(), &fakeAdvisor{})

	_, err = svc.GetPlan(context.Background(), stranger, planID)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	plan, err := svc.GetPlan(context.Background(), owner, planID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", plan.Name)
}
