package api

import (
	"net/http"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/service"
	"ironlog/workout-app/internal/units"

	"github.com/gin-gonic/gin"
)

// HistoryHandler holds the history service dependency.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// --- Response Structs ---

type SetResultResponse struct {
	Weight    *int `json:"weight,omitempty"` // pounds, rounded for display
	Reps      int  `json:"reps"`
	Completed bool `json:"completed"`
}

type ExerciseSnapshotResponse struct {
	Name   string              `json:"name"`
	Weight *int                `json:"weight,omitempty"` // pounds, rounded for display
	Sets   []SetResultResponse `json:"sets"`
}

type HistoryRecordResponse struct {
	ID              string                     `json:"id"`
	PlanID          string                     `json:"planId"`
	PlanName        string                     `json:"planName"`
	StartedAt       time.Time                  `json:"startedAt"`
	CompletedAt     time.Time                  `json:"completedAt"`
	DurationSeconds int64                      `json:"durationSeconds"`
	Exercises       []ExerciseSnapshotResponse `json:"exercises"`
}

// --- Handler Methods ---

func (h *HistoryHandler) ListHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	records, err := h.historyService.ListHistory(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout history")
		return
	}

	out := make([]HistoryRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, MapHistoryRecordToResponse(&records[i]))
	}
	c.JSON(http.StatusOK, out)
}

// MapHistoryRecordToResponse converts a domain HistoryRecord to its DTO,
// crossing the mass-unit boundary.
func MapHistoryRecordToResponse(record *domain.HistoryRecord) HistoryRecordResponse {
	if record == nil {
		return HistoryRecordResponse{}
	}

	exercises := make([]ExerciseSnapshotResponse, 0, len(record.Exercises))
	for i := range record.Exercises {
		snapshot := &record.Exercises[i]
		resp := ExerciseSnapshotResponse{
			Name:   snapshot.Name,
			Weight: units.DisplayPoundsPtr(snapshot.WeightKg),
		}
		for _, set := range snapshot.Sets {
			resp.Sets = append(resp.Sets, SetResultResponse{
				Weight:    units.DisplayPoundsPtr(set.WeightKg),
				Reps:      set.Reps,
				Completed: set.Completed,
			})
		}
		exercises = append(exercises, resp)
	}

	return HistoryRecordResponse{
		ID:              record.ID.Hex(),
		PlanID:          record.PlanID.Hex(),
		PlanName:        record.PlanName,
		StartedAt:       record.StartedAt,
		CompletedAt:     record.CompletedAt,
		DurationSeconds: record.DurationSeconds,
		Exercises:       exercises,
	}
}
