package stats_test

import (
	"testing"
	"time"

	"ironlog/workout-app/internal/config"
	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/stats"
	"ironlog/workout-app/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		EnergyHighThreshold:     0.7,
		EnergyGoodThreshold:     0.5,
		EnergyModerateThreshold: 0.3,
		EnergyHighScore:         90,
		EnergyGoodScore:         75,
		EnergyModerateScore:     50,
		EnergyLowScore:          25,
	}
}

func weight(kg float64) *float64 { return &kg }

func record(completedAt time.Time, durationSeconds int64, weights ...float64) domain.HistoryRecord {
	r := domain.HistoryRecord{
		PlanName:        "Workout",
		StartedAt:       completedAt.Add(-time.Duration(durationSeconds) * time.Second),
		CompletedAt:     completedAt,
		DurationSeconds: durationSeconds,
	}
	for _, w := range weights {
		r.Exercises = append(r.Exercises, domain.ExerciseSnapshot{
			Name:     "Lift",
			WeightKg: weight(w),
		})
	}
	return r
}

func TestStreakEmptyHistory(t *testing.T) {
	assert.Equal(t, 0, stats.Streak(nil, time.Now()))
}

func TestStreakBreaksOnGap(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	records := []domain.HistoryRecord{
		record(now.Add(-2*time.Hour), 3600, 100),             // today
		record(now.AddDate(0, 0, -1).Add(-time.Hour), 3600),  // yesterday
		record(now.AddDate(0, 0, -4), 3600),                  // four days ago
	}
	assert.Equal(t, 2, stats.Streak(records, now))
}

func TestStreakUnbrokenRun(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	var records []domain.HistoryRecord
	for d := 0; d < 6; d++ {
		records = append(records, record(now.AddDate(0, 0, -d), 3600))
	}
	assert.Equal(t, 6, stats.Streak(records, now))
}

func TestStrongestLiftNoneRecorded(t *testing.T) {
	records := []domain.HistoryRecord{
		record(time.Now(), 3600), // bodyweight only
	}
	assert.Nil(t, stats.FindStrongestLift(records))
	assert.Nil(t, stats.FindStrongestLift(nil))
}

func TestStrongestLiftPicksMax(t *testing.T) {
	older := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	heavy := units.ToKilograms(200)
	light := units.ToKilograms(180)

	records := []domain.HistoryRecord{
		{
			CompletedAt: newer,
			Exercises:   []domain.ExerciseSnapshot{{Name: "Row", WeightKg: &light}},
		},
		{
			CompletedAt: older,
			Exercises:   []domain.ExerciseSnapshot{{Name: "Deadlift", WeightKg: &heavy}},
		},
	}

	lift := stats.FindStrongestLift(records)
	require.NotNil(t, lift)
	assert.Equal(t, "Deadlift", lift.Exercise)
	assert.Equal(t, older, lift.Date)
	assert.Equal(t, 200, units.DisplayPounds(lift.WeightKg))
}

func TestStrongestLiftTieFirstOccurrenceWins(t *testing.T) {
	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []domain.HistoryRecord{
		record(day, 3600, 100),
		record(day.AddDate(0, 0, 1), 3600, 100),
	}
	records[0].Exercises[0].Name = "First"
	records[1].Exercises[0].Name = "Second"

	lift := stats.FindStrongestLift(records)
	require.NotNil(t, lift)
	assert.Equal(t, "First", lift.Exercise)
}

func TestEnergyScoreDefault(t *testing.T) {
	analyzer := stats.NewAnalyzer(analyticsConfig())
	assert.Equal(t, 50, analyzer.EnergyScore(nil))
	assert.Equal(t, 50, analyzer.EnergyScore([]domain.HistoryRecord{
		record(time.Now(), 3600, 100),
	}))
}

func TestEnergyScoreSteadyProgression(t *testing.T) {
	analyzer := stats.NewAnalyzer(analyticsConfig())
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	// Five sessions, strictly increasing total weight, non-increasing
	// duration: every pair scores both points.
	var records []domain.HistoryRecord
	for d := 0; d < 5; d++ {
		records = append(records, record(
			now.AddDate(0, 0, -d),
			int64(3600-d*60),       // older sessions were longer
			float64(100-d*5),       // older sessions were lighter
		))
	}
	assert.Equal(t, 90, analyzer.EnergyScore(records))
}

func TestEnergyScoreRegression(t *testing.T) {
	analyzer := stats.NewAnalyzer(analyticsConfig())
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	// Weight dropping and sessions dragging out: no points at all.
	var records []domain.HistoryRecord
	for d := 0; d < 5; d++ {
		records = append(records, record(
			now.AddDate(0, 0, -d),
			int64(3600+(5-d)*1200), // newer sessions much longer than older
			float64(60+d*10),       // newer sessions lighter
		))
	}
	assert.Equal(t, 25, analyzer.EnergyScore(records))
}

func TestEnergyScoreUsesAtMostFiveRecords(t *testing.T) {
	analyzer := stats.NewAnalyzer(analyticsConfig())
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	// Recent five progress perfectly; ancient history regresses badly and
	// must not matter.
	var records []domain.HistoryRecord
	for d := 0; d < 5; d++ {
		records = append(records, record(now.AddDate(0, 0, -d), 3600, float64(100-d*5)))
	}
	for d := 5; d < 12; d++ {
		records = append(records, record(now.AddDate(0, 0, -d), 50000, 500))
	}
	assert.Equal(t, 90, analyzer.EnergyScore(records))
}

func TestAnalyzeSummary(t *testing.T) {
	analyzer := stats.NewAnalyzer(analyticsConfig())
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	records := []domain.HistoryRecord{
		record(now.Add(-time.Hour), 3600, 100),
		record(now.AddDate(0, 0, -1), 3700, 95),
	}

	summary := analyzer.Analyze(records, now)
	assert.Equal(t, 2, summary.StreakDays)
	require.NotNil(t, summary.StrongestLift)
	assert.Equal(t, 100.0, summary.StrongestLift.WeightKg)
	// Both pair points awarded: rate 1.0 -> high score.
	assert.Equal(t, 90, summary.EnergyScore)
}
