package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetResult is one set of an exercise snapshot, with the completion flag
// captured when the session finished.
type SetResult struct {
	WeightKg  *float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Reps      int      `bson:"reps" json:"reps"`
	Completed bool     `bson:"completed" json:"completed"`
}

// ExerciseSnapshot freezes one exercise of the originating plan together with
// per-set completion at finish time.
type ExerciseSnapshot struct {
	Name     string      `bson:"name" json:"name"`
	WeightKg *float64    `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Sets     []SetResult `bson:"sets" json:"sets"`
}

// HistoryRecord is the immutable record of one completed workout session and
// the sole source for analytics. PlanName is denormalized because the plan may
// later be deleted.
type HistoryRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID          primitive.ObjectID `bson:"planId" json:"planId"`
	PlanName        string             `bson:"planName" json:"planName"`
	StartedAt       time.Time          `bson:"startedAt" json:"startedAt"`
	CompletedAt     time.Time          `bson:"completedAt" json:"completedAt"`
	DurationSeconds int64              `bson:"durationSeconds" json:"durationSeconds"`
	Exercises       []ExerciseSnapshot `bson:"exercises" json:"exercises"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// TotalWeightKg sums the per-exercise weights of the snapshot, treating
// missing weight as 0. Used by the analytics engine for progression checks.
func (r *HistoryRecord) TotalWeightKg() float64 {
	var total float64
	for i := range r.Exercises {
		if w := r.Exercises[i].WeightKg; w != nil {
			total += *w
		}
	}
	return total
}
