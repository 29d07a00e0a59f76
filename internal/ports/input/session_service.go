package input

import (
	"context"

	"github.com/google/uuid"

	"localaichat/internal/domain"
)

// SessionService interface - Input port (use case)
// Defines what the application can do with stored sessions
type SessionService interface {
	NewSession(ctx context.Context, overrides domain.SessionOverrides) (*domain.ChatSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	SaveSession(ctx context.Context, session *domain.ChatSession) error
	ResetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListSessions(ctx context.Context) ([]uuid.UUID, error)
}
