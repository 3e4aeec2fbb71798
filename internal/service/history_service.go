package service

import (
	"context"
	"fmt"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/workout"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryService materializes finished sessions as immutable history records
// and serves the record set back, newest first. It implements
// workout.Recorder.
type HistoryService interface {
	workout.Recorder
	ListHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryRecord, error)
}

type historyService struct {
	historyRepo repository.HistoryRepository
	log         *logrus.Entry
	now         func() time.Time
}

// NewHistoryService creates a new instance of historyService.
func NewHistoryService(historyRepo repository.HistoryRepository) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		log:         logrus.WithField("component", "history_service"),
		now:         time.Now,
	}
}

// Record converts one finished session into a persisted HistoryRecord.
// A completion time earlier than the start time indicates a clock anomaly
// and fails validation rather than being clamped. Persistence failures are
// surfaced verbatim; the caller keeps the session in memory so the operation
// can be retried with the same inputs. Analytics are recomputed from the
// stored record set on every read, so a successful insert is all the refresh
// the engine needs.
func (s *historyService) Record(ctx context.Context, plan *domain.Plan, startedAt time.Time, completions map[workout.SetKey]bool) (*domain.HistoryRecord, error) {
	completedAt := s.now()
	duration := completedAt.Sub(startedAt)
	if duration < 0 {
		return nil, fmt.Errorf("%w: startedAt=%s completedAt=%s",
			ErrNegativeDuration, startedAt.Format(time.RFC3339), completedAt.Format(time.RFC3339))
	}

	record := &domain.HistoryRecord{
		UserID:          plan.UserID,
		PlanID:          plan.ID,
		PlanName:        plan.Name,
		StartedAt:       startedAt,
		CompletedAt:     completedAt,
		DurationSeconds: int64(duration / time.Second),
		Exercises:       snapshotExercises(plan, completions),
	}

	recordID, err := s.historyRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = recordID

	s.log.WithFields(logrus.Fields{
		"plan":            plan.Name,
		"durationSeconds": record.DurationSeconds,
	}).Info("workout session recorded")
	return record, nil
}

// snapshotExercises freezes the plan's exercises with per-set completion
// flags. Exercises with set details keep each set's own weight and reps;
// exercises without get setCount synthesized entries using the base values.
func snapshotExercises(plan *domain.Plan, completions map[workout.SetKey]bool) []domain.ExerciseSnapshot {
	snapshots := make([]domain.ExerciseSnapshot, 0, len(plan.Exercises))
	for i := range plan.Exercises {
		ex := &plan.Exercises[i]
		snapshot := domain.ExerciseSnapshot{
			Name:     ex.Name,
			WeightKg: ex.WeightKg,
		}

		if len(ex.SetDetails) > 0 {
			for j, detail := range ex.SetDetails {
				snapshot.Sets = append(snapshot.Sets, domain.SetResult{
					WeightKg:  detail.WeightKg,
					Reps:      detail.Reps,
					Completed: completions[workout.SetKey{Exercise: i, Set: j}],
				})
			}
		} else {
			for j := 0; j < ex.Sets; j++ {
				snapshot.Sets = append(snapshot.Sets, domain.SetResult{
					WeightKg:  ex.WeightKg,
					Reps:      ex.Reps,
					Completed: completions[workout.SetKey{Exercise: i, Set: j}],
				})
			}
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// ListHistory retrieves the user's records ordered by completedAt descending.
func (s *historyService) ListHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryRecord, error) {
	return s.historyRepo.GetByUserID(ctx, userID)
}
