package service

import (
	"context"
	"errors"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/workout"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNoActiveSession = errors.New("no active workout session")

// SessionService drives the per-user workout session lifecycle. Terminal
// sessions are released from the manager; a fresh tracker is created for the
// next workout.
type SessionService interface {
	// StartSession begins tracking the given plan and starts its clock.
	StartSession(ctx context.Context, userID, planID primitive.ObjectID) (*workout.Session, error)
	GetSession(ctx context.Context, userID primitive.ObjectID) (*workout.Session, error)
	ToggleSet(ctx context.Context, userID primitive.ObjectID, exerciseIndex, setIndex int) (*workout.Session, error)
	// FinishSession records the session as history. On recorder failure the
	// session stays in progress so the call can be retried.
	FinishSession(ctx context.Context, userID primitive.ObjectID) (*domain.HistoryRecord, error)
	CancelSession(ctx context.Context, userID primitive.ObjectID) error
}

type sessionService struct {
	planService PlanService
	history     HistoryService
	sessions    *workout.Manager
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(planService PlanService, history HistoryService, sessions *workout.Manager) SessionService {
	return &sessionService{
		planService: planService,
		history:     history,
		sessions:    sessions,
	}
}

// StartSession fetches the plan (enforcing ownership), registers a session
// for the user and starts it.
func (s *sessionService) StartSession(ctx context.Context, userID, planID primitive.ObjectID) (*workout.Session, error) {
	plan, err := s.planService.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Begin(userID.Hex(), plan)
	if err != nil {
		return nil, err
	}
	if err := session.Start(); err != nil {
		s.sessions.Release(userID.Hex())
		return nil, err
	}
	return session, nil
}

// GetSession returns the user's current session.
func (s *sessionService) GetSession(_ context.Context, userID primitive.ObjectID) (*workout.Session, error) {
	session, err := s.sessions.Get(userID.Hex())
	if err != nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// ToggleSet flips one set's completion flag on the active session.
func (s *sessionService) ToggleSet(ctx context.Context, userID primitive.ObjectID, exerciseIndex, setIndex int) (*workout.Session, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := session.ToggleSet(exerciseIndex, setIndex); err != nil {
		return nil, err
	}
	return session, nil
}

// FinishSession completes the active session through the history recorder
// and releases the tracker on success.
func (s *sessionService) FinishSession(ctx context.Context, userID primitive.ObjectID) (*domain.HistoryRecord, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, err := session.Finish(ctx, s.history)
	if err != nil {
		// The session stays in progress; the user can retry without losing
		// any completion state.
		return nil, err
	}

	s.sessions.Release(userID.Hex())
	return record, nil
}

// CancelSession discards the active session; nothing is persisted.
func (s *sessionService) CancelSession(ctx context.Context, userID primitive.ObjectID) error {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return err
	}
	if err := session.Cancel(); err != nil {
		return err
	}
	s.sessions.Release(userID.Hex())
	return nil
}
