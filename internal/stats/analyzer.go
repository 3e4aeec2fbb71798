// Package stats derives training statistics from the immutable workout
// history: current streak, strongest recorded lift and a heuristic
// energy/readiness score. Everything is recomputed on demand from the full
// record set; nothing is maintained incrementally.
package stats

import (
	"sort"
	"time"

	"ironlog/workout-app/internal/config"
	"ironlog/workout-app/internal/domain"
)

// defaultEnergyScore is reported while fewer than 2 records exist.
const defaultEnergyScore = 50

// energyWindow bounds how many recent records feed the progression check.
const energyWindow = 5

// durationSlack allows a 10% duration variance to still count as progress.
const durationSlack = 1.1

// StrongestLift is the heaviest weight ever recorded across all history.
type StrongestLift struct {
	Exercise string    `json:"exercise"`
	WeightKg float64   `json:"weightKg"`
	Date     time.Time `json:"date"`
}

// Summary is the full analytics result for one user.
type Summary struct {
	StreakDays    int            `json:"streakDays"`
	StrongestLift *StrongestLift `json:"strongestLift,omitempty"` // nil when no lift recorded
	// EnergyScore is a heuristic progression indicator, not a physiological
	// measurement.
	EnergyScore int `json:"energyScore"`
}

// Analyzer computes statistics from history records. The energy score
// thresholds are product-tuned constants taken from configuration.
type Analyzer struct {
	cfg config.AnalyticsConfig
}

// NewAnalyzer creates an Analyzer with the given scoring constants.
func NewAnalyzer(cfg config.AnalyticsConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze computes the full summary for the given records. The records may
// arrive in any order; strongest-lift scanning uses the order given (ties
// break on first occurrence), while streak and energy sort by recency.
func (a *Analyzer) Analyze(records []domain.HistoryRecord, now time.Time) Summary {
	return Summary{
		StreakDays:    Streak(records, now),
		StrongestLift: FindStrongestLift(records),
		EnergyScore:   a.EnergyScore(records),
	}
}

// Streak counts consecutive training days walking backwards from now. A
// record extends the streak while the whole-day gap to the current reference
// time is at most one day; the reference then moves to that record.
func Streak(records []domain.HistoryRecord, now time.Time) int {
	sorted := sortedByRecency(records)

	streak := 0
	reference := now
	for _, record := range sorted {
		diffDays := int(reference.Sub(record.CompletedAt).Hours() / 24)
		if diffDays > 1 {
			break
		}
		streak++
		reference = record.CompletedAt
	}
	return streak
}

// FindStrongestLift scans every exercise of every record, in the order given,
// and returns the heaviest weighted one. Returns nil when no exercise carries
// a weight.
func FindStrongestLift(records []domain.HistoryRecord) *StrongestLift {
	var strongest *StrongestLift
	for i := range records {
		record := &records[i]
		for j := range record.Exercises {
			ex := &record.Exercises[j]
			if ex.WeightKg == nil {
				continue
			}
			// Strict greater-than: the first occurrence wins ties.
			if strongest == nil || *ex.WeightKg > strongest.WeightKg {
				strongest = &StrongestLift{
					Exercise: ex.Name,
					WeightKg: *ex.WeightKg,
					Date:     record.CompletedAt,
				}
			}
		}
	}
	return strongest
}

// EnergyScore rates recent progression on the up-to-5 most recent records.
// Each adjacent pair scores one point when the newer session's total weight
// exceeds the older one's, and another when the newer duration stays within
// 110% of the older. The resulting rate picks one of four configured scores.
// Fewer than two records yield the neutral default of 50.
func (a *Analyzer) EnergyScore(records []domain.HistoryRecord) int {
	sorted := sortedByRecency(records)
	if len(sorted) < 2 {
		return defaultEnergyScore
	}
	if len(sorted) > energyWindow {
		sorted = sorted[:energyWindow]
	}

	points := 0
	pairs := len(sorted) - 1
	for i := 1; i < len(sorted); i++ {
		newer, older := &sorted[i-1], &sorted[i]

		if newer.TotalWeightKg() > older.TotalWeightKg() {
			points++
		}
		if float64(newer.DurationSeconds) <= float64(older.DurationSeconds)*durationSlack {
			points++
		}
	}

	rate := float64(points) / float64(pairs*2)
	switch {
	case rate > a.cfg.EnergyHighThreshold:
		return a.cfg.EnergyHighScore
	case rate > a.cfg.EnergyGoodThreshold:
		return a.cfg.EnergyGoodScore
	case rate > a.cfg.EnergyModerateThreshold:
		return a.cfg.EnergyModerateScore
	default:
		return a.cfg.EnergyLowScore
	}
}

// sortedByRecency returns a copy ordered by completedAt descending.
func sortedByRecency(records []domain.HistoryRecord) []domain.HistoryRecord {
	sorted := make([]domain.HistoryRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})
	return sorted
}
