package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroup classifies catalog exercises for filtering.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "Chest"
	MuscleBack      MuscleGroup = "Back"
	MuscleShoulders MuscleGroup = "Shoulders"
	MuscleLegs      MuscleGroup = "Legs"
	MuscleArms      MuscleGroup = "Arms"
	MuscleCore      MuscleGroup = "Core"
)

// ValidMuscleGroup reports whether g is one of the known muscle groups.
func ValidMuscleGroup(g MuscleGroup) bool {
	switch g {
	case MuscleChest, MuscleBack, MuscleShoulders, MuscleLegs, MuscleArms, MuscleCore:
		return true
	}
	return false
}

// CatalogExercise is a reference-library exercise shared read-mostly data.
// MediaObjectKey points at an optional demonstration video/image in object
// storage; the actual file is reached through presigned URLs only.
type CatalogExercise struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"` // creator
	Name            string             `bson:"name" json:"name"`
	MuscleGroup     MuscleGroup        `bson:"muscleGroup" json:"muscleGroup"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	EquipmentNeeded []string           `bson:"equipmentNeeded,omitempty" json:"equipmentNeeded,omitempty"`
	MediaObjectKey  string             `bson:"mediaObjectKey,omitempty" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
