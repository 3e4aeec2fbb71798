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

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

// SetDetailRequest carries one set of a user-authored exercise, weight in pounds.
type SetDetailRequest struct {
	Weight *float64 `json:"weight"` // pounds, nil for bodyweight
	Reps   int      `json:"reps" binding:"required,min=1"`
}

type PlanExerciseRequest struct {
	Name       string             `json:"name" binding:"required"`
	Sets       int                `json:"sets"`
	Reps       int                `json:"reps"`
	Weight     *float64           `json:"weight"` // pounds
	SetDetails []SetDetailRequest `json:"setDetails"`
}

type CreatePlanRequest struct {
	Name      string                `json:"name" binding:"required"`
	Exercises []PlanExerciseRequest `json:"exercises" binding:"required,min=1"`
}

type ClonePlanRequest struct {
	Name string `json:"name"`
}

type SetDetailResponse struct {
	Weight *int `json:"weight,omitempty"` // pounds, rounded for display
	Reps   int  `json:"reps"`
}

type ExerciseResponse struct {
	Name       string              `json:"name"`
	Sets       int                 `json:"sets"`
	Reps       int                 `json:"reps"`
	Weight     *int                `json:"weight,omitempty"` // pounds, rounded for display
	SetDetails []SetDetailResponse `json:"setDetails,omitempty"`
}

type PlanResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Exercises []ExerciseResponse `json:"exercises"`
	IsCustom  bool               `json:"isCustom"`
	CreatedAt time.Time          `json:"createdAt"`
}

// --- Handler Methods ---

// GeneratePlans regenerates the user's plan set through the advisory service.
// A missing profile is not an error from the client's point of view; the call
// simply does nothing.
func (h *PlanHandler) GeneratePlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.GeneratePlans(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileRequired):
			c.Status(http.StatusNoContent)
		case errors.Is(err, service.ErrInvalidAdvisoryReply):
			abortWithError(c, http.StatusBadGateway, "The advisory service returned an unusable reply")
		case errors.Is(err, service.ErrAdvisorFailed):
			abortWithError(c, http.StatusBadGateway, "The advisory service is unavailable")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plans")
		}
		return
	}

	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}

	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		}
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	inputs := make([]service.PlanExerciseInput, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		input := service.PlanExerciseInput{
			Name:     ex.Name,
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			WeightKg: units.KgPtrFromPounds(ex.Weight),
		}
		for _, sd := range ex.SetDetails {
			input.SetDetails = append(input.SetDetails, service.SetDetailInput{
				WeightKg: units.KgPtrFromPounds(sd.Weight),
				Reps:     sd.Reps,
			})
		}
		inputs = append(inputs, input)
	}

	plan, err := h.planService.CreateCustomPlan(c.Request.Context(), userID, req.Name, inputs)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

func (h *PlanHandler) ClonePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	// The body is optional; an empty one keeps the source name.
	var req ClonePlanRequest
	_ = c.ShouldBindJSON(&req)

	plan, err := h.planService.ClonePlan(c.Request.Context(), userID, planID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to clone plan")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MapPlanToResponse converts a domain Plan to its DTO, crossing the mass-unit
// boundary.
func MapPlanToResponse(plan *domain.Plan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}

	exercises := make([]ExerciseResponse, 0, len(plan.Exercises))
	for i := range plan.Exercises {
		ex := &plan.Exercises[i]
		resp := ExerciseResponse{
			Name:   ex.Name,
			Sets:   ex.Sets,
			Reps:   ex.Reps,
			Weight: units.DisplayPoundsPtr(ex.WeightKg),
		}
		for _, sd := range ex.SetDetails {
			resp.SetDetails = append(resp.SetDetails, SetDetailResponse{
				Weight: units.DisplayPoundsPtr(sd.WeightKg),
				Reps:   sd.Reps,
			})
		}
		exercises = append(exercises, resp)
	}

	return PlanResponse{
		ID:        plan.ID.Hex(),
		Name:      plan.Name,
		Exercises: exercises,
		IsCustom:  plan.IsCustom,
		CreatedAt: plan.CreatedAt,
	}
}

// MapPlansToResponse converts a plan slice to DTOs.
func MapPlansToResponse(plans []domain.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, MapPlanToResponse(&plans[i]))
	}
	return out
}
