// Package session holds the per-session workflow state: the uploaded file
// set, the phase state machine, and the last results.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"subcheck/internal/domain"
	"subcheck/internal/port"
)

// Store is an in-memory port.SessionStore. Sessions never outlive the
// process; everything they own is write-once and superseded wholesale.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*domain.Session)}
}

var _ port.SessionStore = (*Store)(nil)

// Create registers a fresh idle session.
func (s *Store) Create(_ context.Context) (*domain.Session, error) {
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:         uuid.New(),
		Phase:      domain.PhaseIdle,
		Datasheets: []domain.IngestedFile{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return clone(sess), nil
}

// Get returns a snapshot of the session.
func (s *Store) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(sess), nil
}

// Update applies fn to the session under the store lock, so concurrent
// mutations of one session are serialized. If fn returns an error the
// session is left untouched.
func (s *Store) Update(_ context.Context, id uuid.UUID, fn func(*domain.Session) error) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := clone(sess)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()
	s.sessions[id] = next
	return clone(next), nil
}

// Delete removes the session and everything it owns.
func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// clone copies the session deeply enough that callers cannot mutate stored
// state through the returned value. Results are write-once, so sharing them
// is safe.
func clone(sess *domain.Session) *domain.Session {
	out := *sess
	out.Datasheets = make([]domain.IngestedFile, len(sess.Datasheets))
	copy(out.Datasheets, sess.Datasheets)
	if sess.MasterList != nil {
		master := *sess.MasterList
		out.MasterList = &master
	}
	return &out
}
