package workout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// The elapsed ticker must never outlive its session.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func weight(lbs float64) *float64 { return &lbs }

func testPlan() *domain.Plan {
	return &domain.Plan{
		Name: "Push Day",
		Exercises: []domain.Exercise{
			{Name: "Bench Press", Sets: 3, Reps: 8, WeightKg: weight(80)},
			{
				Name: "Incline Press", Sets: 2, Reps: 10,
				SetDetails: []domain.SetDetail{
					{Reps: 10, WeightKg: weight(50)},
					{Reps: 8, WeightKg: weight(55)},
					{Reps: 6, WeightKg: weight(60)},
				},
			},
		},
	}
}

type fakeRecorder struct {
	err    error
	record *domain.HistoryRecord
	calls  int
}

func (r *fakeRecorder) Record(_ context.Context, plan *domain.Plan, startedAt time.Time, completions map[workout.SetKey]bool) (*domain.HistoryRecord, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if r.record == nil {
		r.record = &domain.HistoryRecord{PlanName: plan.Name, StartedAt: startedAt}
	}
	return r.record, nil
}

func TestSessionLifecycle(t *testing.T) {
	s := workout.NewSession(testPlan())
	assert.Equal(t, workout.StateNotStarted, s.State())

	require.NoError(t, s.Start())
	assert.Equal(t, workout.StateInProgress, s.State())
	assert.False(t, s.StartedAt().IsZero())

	// A second start is not permitted.
	assert.ErrorIs(t, s.Start(), workout.ErrAlreadyStarted)

	rec := &fakeRecorder{}
	record, err := s.Finish(context.Background(), rec)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, workout.StateCompleted, s.State())

	// Terminal states are not revisited.
	assert.ErrorIs(t, s.Cancel(), workout.ErrNotInProgress)
	_, err = s.Finish(context.Background(), rec)
	assert.ErrorIs(t, err, workout.ErrNotInProgress)
}

func TestProgress(t *testing.T) {
	// SetDetails length (3) is authoritative for the second exercise: 3+3 sets.
	s := workout.NewSession(testPlan())
	require.NoError(t, s.Start())
	defer func() { require.NoError(t, s.Cancel()) }()

	assert.Equal(t, 0.0, s.Progress())

	require.NoError(t, s.ToggleSet(0, 0))
	assert.InDelta(t, 100.0/6, s.Progress(), 1e-9)

	prev := s.Progress()
	for _, k := range []workout.SetKey{{0, 1}, {0, 2}, {1, 0}, {1, 1}} {
		require.NoError(t, s.ToggleSet(k.Exercise, k.Set))
		assert.GreaterOrEqual(t, s.Progress(), prev)
		prev = s.Progress()
	}

	require.NoError(t, s.ToggleSet(1, 2))
	assert.InDelta(t, 100.0, s.Progress(), 1e-9)

	// Untoggling moves progress back down.
	require.NoError(t, s.ToggleSet(1, 2))
	assert.Less(t, s.Progress(), 100.0)
}

func TestProgressZeroTotalSets(t *testing.T) {
	s := workout.NewSession(&domain.Plan{Name: "Empty"})
	require.NoError(t, s.Start())
	defer func() { require.NoError(t, s.Cancel()) }()
	assert.Equal(t, 0.0, s.Progress())
}

func TestToggleSetValidation(t *testing.T) {
	s := workout.NewSession(testPlan())

	// Not started yet.
	assert.ErrorIs(t, s.ToggleSet(0, 0), workout.ErrNotInProgress)

	require.NoError(t, s.Start())
	defer func() { require.NoError(t, s.Cancel()) }()

	assert.ErrorIs(t, s.ToggleSet(2, 0), workout.ErrSetOutOfRange)
	assert.ErrorIs(t, s.ToggleSet(0, 3), workout.ErrSetOutOfRange)
	assert.ErrorIs(t, s.ToggleSet(1, 3), workout.ErrSetOutOfRange) // setDetails length governs
	assert.ErrorIs(t, s.ToggleSet(-1, 0), workout.ErrSetOutOfRange)
}

func TestFinishFailureKeepsSessionInProgress(t *testing.T) {
	s := workout.NewSession(testPlan())
	require.NoError(t, s.Start())
	require.NoError(t, s.ToggleSet(0, 0))

	rec := &fakeRecorder{err: errors.New("store unreachable")}
	_, err := s.Finish(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, workout.StateInProgress, s.State())

	// Retry with the same inputs succeeds without re-entering data.
	rec.err = nil
	record, err := s.Finish(context.Background(), rec)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 2, rec.calls)
	assert.True(t, s.Completions()[workout.SetKey{Exercise: 0, Set: 0}])
}

func TestCancelDiscardsState(t *testing.T) {
	s := workout.NewSession(testPlan())
	require.NoError(t, s.Start())
	require.NoError(t, s.ToggleSet(0, 0))

	require.NoError(t, s.Cancel())
	assert.Equal(t, workout.StateCancelled, s.State())
	assert.Empty(t, s.Completions())
}

func TestCancelBeforeStart(t *testing.T) {
	s := workout.NewSession(testPlan())
	require.NoError(t, s.Cancel())
	assert.Equal(t, workout.StateCancelled, s.State())
}

func TestManagerSingleActiveSession(t *testing.T) {
	m := workout.NewManager()

	s, err := m.Begin("user-1", testPlan())
	require.NoError(t, err)
	require.NoError(t, s.Start())

	_, err = m.Begin("user-1", testPlan())
	assert.ErrorIs(t, err, workout.ErrSessionActive)

	// A different user is unaffected.
	other, err := m.Begin("user-2", testPlan())
	require.NoError(t, err)
	require.NoError(t, other.Cancel())

	require.NoError(t, s.Cancel())
	m.Release("user-1")

	_, err = m.Get("user-1")
	assert.ErrorIs(t, err, workout.ErrSessionNotFound)

	// A fresh tracker can be created after release.
	_, err = m.Begin("user-1", testPlan())
	require.NoError(t, err)
	fresh, err := m.Get("user-1")
	require.NoError(t, err)
	require.NoError(t, fresh.Cancel())
}

// A cancelled-but-not-released session may be replaced.
func TestManagerReplacesTerminalSession(t *testing.T) {
	m := workout.NewManager()

	s, err := m.Begin("user-1", testPlan())
	require.NoError(t, err)
	require.NoError(t, s.Cancel())

	replacement, err := m.Begin("user-1", testPlan())
	require.NoError(t, err)
	require.NoError(t, replacement.Cancel())
}

// blockingRecorder parks inside Record until released, so a test can overlap
// a second call with an in-flight finish.
type blockingRecorder struct {
	entered chan struct{}
	release chan struct{}
	calls   int
}

func (r *blockingRecorder) Record(_ context.Context, plan *domain.Plan, startedAt time.Time, _ map[workout.SetKey]bool) (*domain.HistoryRecord, error) {
	r.calls++
	close(r.entered)
	<-r.release
	return &domain.HistoryRecord{PlanName: plan.Name, StartedAt: startedAt}, nil
}

func TestFinishOverlappingCallsRecordOnce(t *testing.T) {
	s := workout.NewSession(testPlan())
	require.NoError(t, s.Start())

	rec := &blockingRecorder{entered: make(chan struct{}), release: make(chan struct{})}
	type outcome struct {
		record *domain.HistoryRecord
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		record, err := s.Finish(context.Background(), rec)
		done <- outcome{record, err}
	}()
	<-rec.entered

	// While the recorder call is in flight neither a second finish nor a
	// cancel may slip through.
	_, err := s.Finish(context.Background(), rec)
	assert.ErrorIs(t, err, workout.ErrNotInProgress)
	assert.ErrorIs(t, s.Cancel(), workout.ErrNotInProgress)

	close(rec.release)
	first := <-done
	require.NoError(t, first.err)
	require.NotNil(t, first.record)
	assert.Equal(t, workout.StateCompleted, s.State())
	assert.Equal(t, 1, rec.calls)
}
