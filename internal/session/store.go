package session

import (
	"sync"
	"time"

	"alcyxob/workout-builder/internal/domain"

	"github.com/google/uuid"
)

// New creates an empty session with a generated ID and the given creation time.
func New(now time.Time) domain.WorkoutSession {
	return domain.WorkoutSession{
		ID:        uuid.NewString(),
		Exercises: []domain.ExerciseEntry{},
		CreatedAt: now.UTC(),
	}
}

// Store holds one live session and applies commands to it one at a time.
type Store struct {
	mu      sync.Mutex
	session domain.WorkoutSession
}

// NewStore returns a store owning a copy of s.
func NewStore(s domain.WorkoutSession) *Store {
	return &Store{session: s.Clone()}
}

// Dispatch applies cmd and returns a copy of the resulting session.
func (st *Store) Dispatch(cmd Command) domain.WorkoutSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.session = Apply(st.session, cmd)
	return st.session.Clone()
}

// Snapshot returns a copy of the current session.
func (st *Store) Snapshot() domain.WorkoutSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.session.Clone()
}

// Progress returns the derived metrics of the current session.
func (st *Store) Progress() Progress {
	st.mu.Lock()
	defer st.mu.Unlock()
	return ProgressOf(st.session)
}

// ID returns the live session ID.
func (st *Store) ID() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.session.ID
}
