package service

import (
	"context"

	"github.com/google/uuid"

	"subcheck/internal/domain"
	"subcheck/internal/port"
)

// SessionService manages session lifecycle and the uploaded file set.
type SessionService interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Reset(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetMasterList(ctx context.Context, id uuid.UUID, file *domain.IngestedFile) (*domain.Session, error)
	AddDatasheets(ctx context.Context, id uuid.UUID, files []domain.IngestedFile) (*domain.Session, error)
	RemoveDatasheet(ctx context.Context, id, fileID uuid.UUID) (*domain.Session, error)
}

type sessionService struct {
	store port.SessionStore
}

// NewSessionService creates a SessionService backed by the given store.
func NewSessionService(store port.SessionStore) SessionService {
	return &sessionService{store: store}
}

func (s *sessionService) Create(ctx context.Context) (*domain.Session, error) {
	return s.store.Create(ctx)
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.store.Get(ctx, id)
}

// Reset returns the session to idle and discards files and results.
func (s *sessionService) Reset(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.store.Update(ctx, id, func(sess *domain.Session) error {
		sess.Phase = domain.PhaseIdle
		sess.MasterList = nil
		sess.Datasheets = []domain.IngestedFile{}
		discardResults(sess)
		return nil
	})
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// SetMasterList replaces the master list. Any prior results are superseded
// and the session returns to idle.
func (s *sessionService) SetMasterList(ctx context.Context, id uuid.UUID, file *domain.IngestedFile) (*domain.Session, error) {
	return s.store.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Phase.InFlight() {
			return domain.ErrPhaseConflict
		}
		sess.MasterList = file
		sess.Phase = domain.PhaseIdle
		discardResults(sess)
		return nil
	})
}

// AddDatasheets appends files to the datasheet pool, invalidating results.
func (s *sessionService) AddDatasheets(ctx context.Context, id uuid.UUID, files []domain.IngestedFile) (*domain.Session, error) {
	return s.store.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Phase.InFlight() {
			return domain.ErrPhaseConflict
		}
		sess.Datasheets = append(sess.Datasheets, files...)
		sess.Phase = domain.PhaseIdle
		discardResults(sess)
		return nil
	})
}

// RemoveDatasheet drops one file from the pool by ID, invalidating results.
func (s *sessionService) RemoveDatasheet(ctx context.Context, id, fileID uuid.UUID) (*domain.Session, error) {
	return s.store.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Phase.InFlight() {
			return domain.ErrPhaseConflict
		}
		for i, f := range sess.Datasheets {
			if f.ID == fileID {
				sess.Datasheets = append(sess.Datasheets[:i], sess.Datasheets[i+1:]...)
				sess.Phase = domain.PhaseIdle
				discardResults(sess)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// discardResults drops both result types. Results are never merged or
// patched: any input change supersedes them wholesale.
func discardResults(sess *domain.Session) {
	sess.Completeness = nil
	sess.Analysis = nil
	sess.LastError = ""
}
