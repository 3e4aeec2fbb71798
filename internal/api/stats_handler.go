package api

import (
	"net/http"
	"time"

	"ironlog/workout-app/internal/service"
	"ironlog/workout-app/internal/stats"
	"ironlog/workout-app/internal/units"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service dependency.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// --- Response Structs ---

type StrongestLiftResponse struct {
	Exercise string    `json:"exercise"`
	Weight   int       `json:"weight"` // pounds, rounded for display
	Date     time.Time `json:"date"`
}

type StatsSummaryResponse struct {
	StreakDays    int                    `json:"streakDays"`
	StrongestLift *StrongestLiftResponse `json:"strongestLift,omitempty"`
	EnergyScore   int                    `json:"energyScore"`
}

// --- Handler Methods ---

func (h *StatsHandler) GetSummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	summary, err := h.statsService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, MapSummaryToResponse(summary))
}

// MapSummaryToResponse converts an analytics summary to its DTO, crossing the
// mass-unit boundary for the strongest lift.
func MapSummaryToResponse(summary *stats.Summary) StatsSummaryResponse {
	if summary == nil {
		return StatsSummaryResponse{}
	}

	resp := StatsSummaryResponse{
		StreakDays:  summary.StreakDays,
		EnergyScore: summary.EnergyScore,
	}
	if lift := summary.StrongestLift; lift != nil {
		resp.StrongestLift = &StrongestLiftResponse{
			Exercise: lift.Exercise,
			Weight:   units.DisplayPounds(lift.WeightKg),
			Date:     lift.Date,
		}
	}
	return resp
}
