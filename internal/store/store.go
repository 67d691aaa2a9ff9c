package store

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store owns the current State. Dispatch is the single mutation point and
// is serialized; Snapshot returns the latest published State without
// locking. Callers must not modify a snapshot.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[State]
	reducer *Reducer
	logger  *zap.SugaredLogger
}

func New(initial *State, reducer *Reducer, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if initial == nil {
		initial = &State{CurrentView: ViewLanding}
	}
	s := &Store{reducer: reducer, logger: logger}
	s.current.Store(initial)
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() *State {
	return s.current.Load()
}

// Dispatch applies a to the current state and publishes the result.
func (s *Store) Dispatch(a Action) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	next, handled := s.reducer.Reduce(prev, a)
	if !handled {
		s.logger.Warnw("ignoring unknown action", "action", actionName(a))
		return prev
	}
	s.current.Store(next)
	s.logger.Debugw("action applied", "action", a.ActionType(), "view", next.CurrentView, "reservations", len(next.Reservations))
	return next
}

func actionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.ActionType()
}
