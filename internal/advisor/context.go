package advisor

import (
	"encoding/json"
	"strings"

	"ironlog/workout-app/internal/domain"
)

// Bounds on how much context accompanies an advisory request.
const (
	maxContextMessages = 5
	maxContextPlans    = 3
)

// profilePayload is the profile slice of the generation context. Optional
// fields are omitted when empty.
type profilePayload struct {
	FitnessLevel     domain.FitnessLevel `json:"fitness_level"`
	Goals            []string            `json:"goals,omitempty"`
	Equipment        []string            `json:"equipment,omitempty"`
	WorkoutFrequency int                 `json:"workout_frequency"`
	InjuryNotes      string              `json:"injury_notes,omitempty"`
}

type contextPayload struct {
	Profile       profilePayload `json:"profile"`
	ChatContext   string         `json:"chatContext,omitempty"`
	PreviousPlans []domain.Plan  `json:"previousPlans,omitempty"`
}

// BuildContext flattens the profile, recent chat and prior plans into the
// bounded message list for a plan-generation request: at most the last 5 chat
// messages (oldest first) followed by one user message carrying the structured
// payload. Equipment and custom equipment are merged into one list.
// Deterministic given identical inputs.
func BuildContext(profile *domain.Profile, messages []domain.ChatMessage, plans []domain.Plan) ([]Message, error) {
	recent := lastMessages(messages, maxContextMessages)

	recentPlans := plans
	if len(recentPlans) > maxContextPlans {
		recentPlans = recentPlans[:maxContextPlans]
	}

	chatLines := make([]string, 0, len(recent))
	for _, m := range recent {
		chatLines = append(chatLines, m.Content)
	}

	payload := contextPayload{
		Profile: profilePayload{
			FitnessLevel:     profile.FitnessLevel,
			Goals:            profile.Goals,
			Equipment:        profile.AllEquipment(),
			WorkoutFrequency: profile.WorkoutFrequency,
			InjuryNotes:      profile.InjuryNotes,
		},
		ChatContext:   strings.Join(chatLines, "\n"),
		PreviousPlans: recentPlans,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	out := make([]Message, 0, len(recent)+1)
	for _, m := range recent {
		out = append(out, Message{Role: m.Role, Content: m.Content})
	}
	out = append(out, Message{Role: domain.ChatRoleUser, Content: string(encoded)})
	return out, nil
}

// lastMessages returns at most n trailing messages, preserving their
// chronological (oldest-first) order.
func lastMessages(messages []domain.ChatMessage, n int) []domain.ChatMessage {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}
