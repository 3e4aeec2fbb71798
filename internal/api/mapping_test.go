package api

import (
	"testing"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/stats"
	"ironlog/workout-app/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMapPlanToResponseConvertsWeights(t *testing.T) {
	weightKg := 100.0
	plan := &domain.Plan{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Name:   "Push Day",
		Exercises: []domain.Exercise{
			{Name: "Bench Press", Sets: 3, Reps: 8, WeightKg: &weightKg},
			{Name: "Push Up", Sets: 3, Reps: 15}, // bodyweight
		},
		IsCustom: true,
	}

	resp := MapPlanToResponse(plan)
	assert.Equal(t, plan.ID.Hex(), resp.ID)
	assert.True(t, resp.IsCustom)
	require.Len(t, resp.Exercises, 2)

	require.NotNil(t, resp.Exercises[0].Weight)
	assert.Equal(t, 220, *resp.Exercises[0].Weight, "100 kg displays as 220 lb")
	assert.Nil(t, resp.Exercises[1].Weight, "bodyweight stays absent")
}

func TestMapSessionToResponseCompletionKeys(t *testing.T) {
	plan := &domain.Plan{
		ID:   primitive.NewObjectID(),
		Name: "Push Day",
		Exercises: []domain.Exercise{
			{Name: "Bench Press", Sets: 2, Reps: 8},
		},
	}
	session := workout.NewSession(plan)
	require.NoError(t, session.Start())
	defer func() { _ = session.Cancel() }()
	require.NoError(t, session.ToggleSet(0, 1))

	resp := MapSessionToResponse(session)
	assert.Equal(t, string(workout.StateInProgress), resp.State)
	assert.Equal(t, plan.ID.Hex(), resp.PlanID)
	require.NotNil(t, resp.StartedAt)
	assert.True(t, resp.CompletedSets["0-1"])
	assert.False(t, resp.CompletedSets["0-0"])
	assert.InDelta(t, 50.0, resp.Progress, 0.001)
}

func TestMapSummaryToResponseConvertsStrongestLift(t *testing.T) {
	date := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	summary := &stats.Summary{
		StreakDays: 3,
		StrongestLift: &stats.StrongestLift{
			Exercise: "Deadlift",
			WeightKg: 90.718,
			Date:     date,
		},
		EnergyScore: 75,
	}

	resp := MapSummaryToResponse(summary)
	assert.Equal(t, 3, resp.StreakDays)
	assert.Equal(t, 75, resp.EnergyScore)
	require.NotNil(t, resp.StrongestLift)
	assert.Equal(t, "Deadlift", resp.StrongestLift.Exercise)
	assert.Equal(t, 200, resp.StrongestLift.Weight)
	assert.Equal(t, date, resp.StrongestLift.Date)

	empty := MapSummaryToResponse(&stats.Summary{EnergyScore: 50})
	assert.Nil(t, empty.StrongestLift)
}
