package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetDetail gives per-set granularity within an exercise. WeightKg is optional
// (nil means bodyweight / not specified) and stored in kilograms.
type SetDetail struct {
	WeightKg *float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Reps     int      `bson:"reps" json:"reps"`
}

// Exercise is one entry of a plan. When SetDetails is present its length is the
// authoritative set count and Sets/Reps/WeightKg describe the first set only,
// kept for display and summary purposes.
type Exercise struct {
	Name       string      `bson:"name" json:"name"`
	Sets       int         `bson:"sets" json:"sets"`
	Reps       int         `bson:"reps" json:"reps"`
	WeightKg   *float64    `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	SetDetails []SetDetail `bson:"setDetails,omitempty" json:"setDetails,omitempty"`
}

// TotalSets returns the number of sets, honoring SetDetails when present.
func (e *Exercise) TotalSets() int {
	if len(e.SetDetails) > 0 {
		return len(e.SetDetails)
	}
	return e.Sets
}

// Plan is a named ordered list of exercises owned by one user.
// Generated plans (IsCustom=false) are produced by the advisor and replaced
// wholesale on each regeneration; custom plans (IsCustom=true) are authored or
// cloned by the user and are never auto-deleted.
type Plan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Exercises []Exercise         `bson:"exercises" json:"exercises"`
	IsCustom  bool               `bson:"isCustom" json:"isCustom"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// TotalSets sums the set counts of all exercises in the plan.
func (p *Plan) TotalSets() int {
	total := 0
	for i := range p.Exercises {
		total += p.Exercises[i].TotalSets()
	}
	return total
}
