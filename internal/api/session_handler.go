package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ironlog/workout-app/internal/service"
	"ironlog/workout-app/internal/workout"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request/Response Structs ---

type StartSessionRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type ToggleSetRequest struct {
	ExerciseIndex *int `json:"exerciseIndex" binding:"required,min=0"`
	SetIndex      *int `json:"setIndex" binding:"required,min=0"`
}

// SessionResponse mirrors the tracker state. CompletedSets is keyed by
// "exerciseIndex-setIndex".
type SessionResponse struct {
	State          string          `json:"state"`
	PlanID         string          `json:"planId"`
	PlanName       string          `json:"planName"`
	StartedAt      *time.Time      `json:"startedAt,omitempty"`
	ElapsedSeconds int64           `json:"elapsedSeconds"`
	Progress       float64         `json:"progress"`
	CompletedSets  map[string]bool `json:"completedSets"`
}

// --- Handler Methods ---

func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planId format")
		return
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), userID, planID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, workout.ErrSessionActive):
			abortWithError(c, http.StatusConflict, "A workout session is already in progress")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start session")
		}
		return
	}

	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "No active workout session")
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

func (h *SessionHandler) ToggleSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ToggleSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.sessionService.ToggleSet(c.Request.Context(), userID, *req.ExerciseIndex, *req.SetIndex)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			abortWithError(c, http.StatusNotFound, "No active workout session")
		case errors.Is(err, workout.ErrSetOutOfRange):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, workout.ErrNotInProgress):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to toggle set")
		}
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

func (h *SessionHandler) FinishSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	record, err := h.sessionService.FinishSession(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			abortWithError(c, http.StatusNotFound, "No active workout session")
		case errors.Is(err, workout.ErrNotInProgress):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, workout.ErrNoStartTime):
			// The UI prevents this state; nothing to record.
			c.Status(http.StatusNoContent)
		case errors.Is(err, service.ErrNegativeDuration):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			// The session stays in progress; the client may retry.
			abortWithError(c, http.StatusInternalServerError, "Failed to record session, please retry")
		}
		return
	}

	c.JSON(http.StatusCreated, MapHistoryRecordToResponse(record))
}

func (h *SessionHandler) CancelSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.sessionService.CancelSession(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			abortWithError(c, http.StatusNotFound, "No active workout session")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to cancel session")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MapSessionToResponse converts a tracker session to its DTO.
func MapSessionToResponse(session *workout.Session) SessionResponse {
	plan := session.Plan()

	completed := make(map[string]bool)
	for key, done := range session.Completions() {
		completed[fmt.Sprintf("%d-%d", key.Exercise, key.Set)] = done
	}

	resp := SessionResponse{
		State:          string(session.State()),
		PlanID:         plan.ID.Hex(),
		PlanName:       plan.Name,
		ElapsedSeconds: session.ElapsedSeconds(),
		Progress:       session.Progress(),
		CompletedSets:  completed,
	}
	if startedAt := session.StartedAt(); !startedAt.IsZero() {
		resp.StartedAt = &startedAt
	}
	return resp
}
