// Package advisor wraps the natural-language advisory service that proposes
// exercise plans and chat replies. The service is a black box: text in, text
// out. Only the reply of a plan-generation call is validated further (see
// ParsePlanResponse).
package advisor

import (
	"context"

	"ironlog/workout-app/internal/domain"
)

// Message is one entry of the ordered conversation sent to the advisor.
type Message struct {
	Role    domain.ChatRole
	Content string
}

// Advisor is the single request/response contract with the advisory service:
// a system instruction plus an ordered message list, returning free text.
type Advisor interface {
	Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}
