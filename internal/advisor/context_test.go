package advisor_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"ironlog/workout-app/internal/advisor"
	"ironlog/workout-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *domain.Profile {
	return &domain.Profile{
		Age:              30,
		BodyMassKg:       82,
		FitnessLevel:     domain.LevelIntermediate,
		Goals:            []string{"strength"},
		Equipment:        []string{"barbell", "bench"},
		CustomEquipment:  []string{"sandbag"},
		WorkoutFrequency: 4,
	}
}

func TestBuildContextBoundsMessages(t *testing.T) {
	var messages []domain.ChatMessage
	for i := 0; i < 12; i++ {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.ChatRoleUser,
			Content: fmt.Sprintf("message %d", i),
		})
	}

	out, err := advisor.BuildContext(testProfile(), messages, nil)
	require.NoError(t, err)

	// 5 chat messages plus the trailing payload message.
	require.Len(t, out, 6)

	// Chronological order of the kept tail is preserved.
	assert.Equal(t, "message 7", out[0].Content)
	assert.Equal(t, "message 11", out[4].Content)
	assert.Equal(t, domain.ChatRoleUser, out[5].Role)
}

func TestBuildContextBoundsPlans(t *testing.T) {
	var plans []domain.Plan
	for i := 0; i < 7; i++ {
		plans = append(plans, domain.Plan{Name: fmt.Sprintf("plan %d", i)})
	}

	out, err := advisor.BuildContext(testProfile(), nil, plans)
	require.NoError(t, err)
	require.Len(t, out, 1)

	var payload struct {
		PreviousPlans []domain.Plan `json:"previousPlans"`
	}
	require.NoError(t, json.Unmarshal([]byte(out[0].Content), &payload))
	require.Len(t, payload.PreviousPlans, 3)
	assert.Equal(t, "plan 0", payload.PreviousPlans[0].Name)
}

func TestBuildContextMergesEquipment(t *testing.T) {
	out, err := advisor.BuildContext(testProfile(), nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)

	var payload struct {
		Profile struct {
			Equipment   []string `json:"equipment"`
			InjuryNotes string   `json:"injury_notes"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal([]byte(out[0].Content), &payload))
	assert.Equal(t, []string{"barbell", "bench", "sandbag"}, payload.Profile.Equipment)

	// Empty optional fields are omitted from the payload entirely.
	assert.NotContains(t, out[0].Content, "injury_notes")
}

func TestBuildContextDeterministic(t *testing.T) {
	messages := []domain.ChatMessage{
		{Role: domain.ChatRoleUser, Content: "my knee hurts"},
		{Role: domain.ChatRoleAssistant, Content: "avoid deep squats"},
	}
	a, err := advisor.BuildContext(testProfile(), messages, nil)
	require.NoError(t, err)
	b, err := advisor.BuildContext(testProfile(), messages, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
