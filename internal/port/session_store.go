package port

import (
	"context"

	"github.com/google/uuid"

	"subcheck/internal/domain"
)

// SessionStore holds the evolving per-session state. Update applies a
// transition function under the store's lock so concurrent mutations of one
// session are serialized.
type SessionStore interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
