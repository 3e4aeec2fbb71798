package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/service"
	"ironlog/workout-app/internal/units"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

// ProfileRequest carries weights in pounds; storage is kilograms at full
// precision. The conversion happens here, nowhere deeper.
type ProfileRequest struct {
	Age              int      `json:"age" binding:"required,gt=0"`
	Weight           float64  `json:"weight" binding:"required,gt=0"` // pounds
	FitnessLevel     string   `json:"fitnessLevel" binding:"required,oneof=beginner intermediate advanced"`
	Goals            []string `json:"goals"`
	Equipment        []string `json:"equipment"`
	CustomEquipment  []string `json:"customEquipment"`
	WorkoutFrequency int      `json:"workoutFrequency" binding:"required,min=1,max=7"`
	InjuryNotes      string   `json:"injuryNotes"`
}

type ProfileResponse struct {
	ID               string    `json:"id"`
	Age              int       `json:"age"`
	Weight           int       `json:"weight"` // pounds, rounded for display
	FitnessLevel     string    `json:"fitnessLevel"`
	Goals            []string  `json:"goals"`
	Equipment        []string  `json:"equipment"`
	CustomEquipment  []string  `json:"customEquipment,omitempty"`
	WorkoutFrequency int       `json:"workoutFrequency"`
	InjuryNotes      string    `json:"injuryNotes,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// --- Handler Methods ---

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), userID, service.ProfileInput{
		Age:              req.Age,
		BodyMassKg:       units.ToKilograms(req.Weight),
		FitnessLevel:     domain.FitnessLevel(req.FitnessLevel),
		Goals:            req.Goals,
		Equipment:        req.Equipment,
		CustomEquipment:  req.CustomEquipment,
		WorkoutFrequency: req.WorkoutFrequency,
		InjuryNotes:      req.InjuryNotes,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// MapProfileToResponse converts a domain Profile to its DTO, crossing the
// mass-unit boundary.
func MapProfileToResponse(profile *domain.Profile) ProfileResponse {
	if profile == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:               profile.ID.Hex(),
		Age:              profile.Age,
		Weight:           units.DisplayPounds(profile.BodyMassKg),
		FitnessLevel:     string(profile.FitnessLevel),
		Goals:            profile.Goals,
		Equipment:        profile.Equipment,
		CustomEquipment:  profile.CustomEquipment,
		WorkoutFrequency: profile.WorkoutFrequency,
		InjuryNotes:      profile.InjuryNotes,
		UpdatedAt:        profile.UpdatedAt,
	}
}
