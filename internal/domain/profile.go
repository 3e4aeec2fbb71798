package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessLevel describes the user's self-assessed training experience.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// Profile is the single current fitness snapshot of one user. There is at most
// one profile per user; edits overwrite it in place (no history kept).
// BodyMassKg is stored in kilograms at full precision; the API layer converts
// to/from pounds for display.
type Profile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Age              int                `bson:"age" json:"age"`
	BodyMassKg       float64            `bson:"bodyMassKg" json:"bodyMassKg"`
	FitnessLevel     FitnessLevel       `bson:"fitnessLevel" json:"fitnessLevel"`
	Goals            []string           `bson:"goals" json:"goals"`
	Equipment        []string           `bson:"equipment" json:"equipment"`
	CustomEquipment  []string           `bson:"customEquipment,omitempty" json:"customEquipment,omitempty"`
	WorkoutFrequency int                `bson:"workoutFrequency" json:"workoutFrequency"` // sessions per week, 1-7
	InjuryNotes      string             `bson:"injuryNotes,omitempty" json:"injuryNotes,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AllEquipment merges the predefined and free-text equipment entries into one list.
func (p *Profile) AllEquipment() []string {
	merged := make([]string, 0, len(p.Equipment)+len(p.CustomEquipment))
	merged = append(merged, p.Equipment...)
	merged = append(merged, p.CustomEquipment...)
	return merged
}
