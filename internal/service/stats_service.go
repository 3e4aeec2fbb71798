package service

import (
	"context"
	"fmt"
	"time"

	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/stats"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatsService computes progress analytics over a user's workout history.
type StatsService interface {
	GetSummary(ctx context.Context, userID primitive.ObjectID) (*stats.Summary, error)
}

type statsService struct {
	historyRepo repository.HistoryRepository
	analyzer    *stats.Analyzer
	now         func() time.Time
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(historyRepo repository.HistoryRepository, analyzer *stats.Analyzer) StatsService {
	return &statsService{
		historyRepo: historyRepo,
		analyzer:    analyzer,
		now:         time.Now,
	}
}

// GetSummary loads the user's history and derives the streak, strongest lift
// and energy score from it. An empty history yields zeroed stats rather than
// an error.
func (s *statsService) GetSummary(ctx context.Context, userID primitive.ObjectID) (*stats.Summary, error) {
	records, err := s.historyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading history: %v", ErrPersistenceFailed, err)
	}
	summary := s.analyzer.Analyze(records, s.now())
	return &summary, nil
}
