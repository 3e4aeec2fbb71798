package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PlanSystemPrompt constrains a plan-generation reply to a JSON array of plan
// objects. Anything else is a content-validation failure, not a protocol error.
const PlanSystemPrompt = `You are a professional fitness trainer API that generates personalized workout plans.
Consider the user's profile, chat history (especially any mentioned injuries/limitations),
and previous workouts when creating new plans.

Return ONLY a JSON array of workout objects with this format:
[
  {
    "name": "string",
    "exercises": [
      {
        "name": "string",
        "sets": number,
        "reps": number,
        "weight": number (optional, pounds)
      }
    ]
  }
]`

// GeneratedExercise is one exercise of a parsed advisory plan. Weight, when
// present, is in display (pound) units as the prompt requests.
type GeneratedExercise struct {
	Name   string   `json:"name"`
	Sets   int      `json:"sets"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
}

// GeneratedPlan is one plan of a parsed advisory reply.
type GeneratedPlan struct {
	Name      string              `json:"name"`
	Exercises []GeneratedExercise `json:"exercises"`
}

// ParsePlanResponse parses an advisory reply strictly as a JSON array of
// plans. A reply that is not valid JSON, whose top level is not an array, or
// whose entries are malformed fails as a whole; no partial plans are kept.
func ParsePlanResponse(reply string) ([]GeneratedPlan, error) {
	trimmed := strings.TrimSpace(reply)

	var plans []GeneratedPlan
	if err := json.Unmarshal([]byte(trimmed), &plans); err != nil {
		return nil, fmt.Errorf("advisory reply is not a JSON plan array: %w", err)
	}
	if plans == nil {
		// "null" unmarshals cleanly but is not an array.
		return nil, fmt.Errorf("advisory reply top level is not an array")
	}

	for i, plan := range plans {
		if plan.Name == "" {
			return nil, fmt.Errorf("plan %d: missing name", i)
		}
		for j, ex := range plan.Exercises {
			if ex.Name == "" {
				return nil, fmt.Errorf("plan %q exercise %d: missing name", plan.Name, j)
			}
			if ex.Sets < 1 {
				return nil, fmt.Errorf("plan %q exercise %q: sets must be >= 1", plan.Name, ex.Name)
			}
			if ex.Reps < 1 {
				return nil, fmt.Errorf("plan %q exercise %q: reps must be >= 1", plan.Name, ex.Name)
			}
		}
	}
	return plans, nil
}
