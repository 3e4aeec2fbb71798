// Package workout tracks the transient runtime state of a plan being
// actively performed: one state machine per session, a per-second elapsed
// ticker, and per-set completion flags.
package workout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"ironlog/workout-app/internal/domain"
)

// State is the lifecycle position of a session.
// NotStarted -> InProgress -> {Completed | Cancelled}.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateCancelled  State = "cancelled"
)

var (
	ErrAlreadyStarted = errors.New("session already started")
	ErrNotInProgress  = errors.New("session is not in progress")
	ErrNoStartTime    = errors.New("session has no start time")
	ErrSetOutOfRange  = errors.New("set index out of range")
)

// SetKey addresses one set of one exercise in the completion mapping.
type SetKey struct {
	Exercise int
	Set      int
}

// Recorder materializes a finished session as a permanent history record.
// Implemented by the history service.
type Recorder interface {
	Record(ctx context.Context, plan *domain.Plan, startedAt time.Time, completions map[SetKey]bool) (*domain.HistoryRecord, error)
}

// Session is the runtime state of one active workout. All methods are safe
// for concurrent use; terminal states are never revisited.
type Session struct {
	mu        sync.Mutex
	plan      *domain.Plan
	state     State
	startTime time.Time
	completed map[SetKey]bool
	finishing bool // a recorder call is in flight

	elapsedSeconds atomic.Int64
	stopTick       chan struct{}
	tickDone       chan struct{}

	now func() time.Time // replaceable in tests
}

// NewSession creates a tracker for the given plan in the NotStarted state.
func NewSession(plan *domain.Plan) *Session {
	return &Session{
		plan:      plan,
		state:     StateNotStarted,
		completed: make(map[SetKey]bool),
		now:       time.Now,
	}
}

// Plan returns the plan being performed.
func (s *Session) Plan() *domain.Plan {
	return s.plan
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartedAt returns the session start time; zero until Start is called.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// Start moves NotStarted -> InProgress, records the start time and launches
// the per-second elapsed ticker.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	s.state = StateInProgress
	s.startTime = s.now()
	s.stopTick = make(chan struct{})
	s.tickDone = make(chan struct{})
	go s.tick(s.stopTick, s.tickDone)
	return nil
}

// tick recomputes the elapsed seconds once per second until stopped. The
// value is display-only; the persisted duration is computed at finish time.
func (s *Session) tick(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.elapsedSeconds.Store(int64(s.now().Sub(s.startTime) / time.Second))
		case <-stop:
			return
		}
	}
}

// stopTicker halts the elapsed ticker. Must be called with s.mu held, on
// every transition out of InProgress, so no timer goroutine leaks.
func (s *Session) stopTicker() {
	if s.stopTick == nil {
		return
	}
	close(s.stopTick)
	<-s.tickDone
	s.stopTick = nil
	s.tickDone = nil
}

// ElapsedSeconds returns the last ticked elapsed time.
func (s *Session) ElapsedSeconds() int64 {
	return s.elapsedSeconds.Load()
}

// ToggleSet flips the completion flag of one set. Sets may be completed and
// un-completed in any order while the session is in progress.
func (s *Session) ToggleSet(exerciseIndex, setIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if exerciseIndex < 0 || exerciseIndex >= len(s.plan.Exercises) {
		return ErrSetOutOfRange
	}
	if setIndex < 0 || setIndex >= s.plan.Exercises[exerciseIndex].TotalSets() {
		return ErrSetOutOfRange
	}

	key := SetKey{Exercise: exerciseIndex, Set: setIndex}
	s.completed[key] = !s.completed[key]
	return nil
}

// Completions returns a snapshot of the completion mapping.
func (s *Session) Completions() map[SetKey]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[SetKey]bool, len(s.completed))
	for k, v := range s.completed {
		out[k] = v
	}
	return out
}

// Progress returns the completion percentage: completed sets over total sets
// across all exercises, 0 when the plan has no sets.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.plan.TotalSets()
	if total == 0 {
		return 0
	}
	done := 0
	for _, v := range s.completed {
		if v {
			done++
		}
	}
	return float64(done) / float64(total) * 100
}

// Finish moves InProgress -> Completed by delegating to the recorder. On
// recorder failure the session stays InProgress, with its completion mapping
// intact, so the finish can be retried with the same inputs.
func (s *Session) Finish(ctx context.Context, recorder Recorder) (*domain.HistoryRecord, error) {
	s.mu.Lock()
	if s.state != StateInProgress || s.finishing {
		s.mu.Unlock()
		return nil, ErrNotInProgress
	}
	if s.startTime.IsZero() {
		// Unreachable through the state machine; guarded anyway.
		s.mu.Unlock()
		return nil, ErrNoStartTime
	}
	// The finishing flag spans the recorder call, which runs outside the
	// mutex; it keeps a concurrent Finish or Cancel from double-recording.
	s.finishing = true
	plan := s.plan
	startedAt := s.startTime
	completions := make(map[SetKey]bool, len(s.completed))
	for k, v := range s.completed {
		completions[k] = v
	}
	s.mu.Unlock()

	record, err := recorder.Record(ctx, plan, startedAt, completions)

	s.mu.Lock()
	s.finishing = false
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateCompleted
	s.stopTicker()
	s.mu.Unlock()
	return record, nil
}

// Cancel discards the session from either NotStarted or InProgress. Nothing
// is persisted; the completion mapping is dropped.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishing {
		return ErrNotInProgress
	}
	switch s.state {
	case StateNotStarted, StateInProgress:
		s.state = StateCancelled
		s.stopTicker()
		s.completed = make(map[SetKey]bool)
		return nil
	default:
		return ErrNotInProgress
	}
}
