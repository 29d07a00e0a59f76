package output

import (
	"context"

	"github.com/google/uuid"

	"localaichat/internal/domain"
)

// SessionRepository interface - Output port
// Defines what the application needs for persisting chat sessions.
// Credentials (ChatSession.Auth) are never persisted.
type SessionRepository interface {
	// GetSession retrieves a session by id.
	// The returned session belongs to the caller; changes reach the store only through UpdateSession.
	// Returns nil without error if the session does not exist.
	GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)

	// UpdateSession creates or replaces a session together with its history.
	UpdateSession(ctx context.Context, session *domain.ChatSession) error

	// DeleteSession removes a session. Deleting a missing session is not an error.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// ListSessions returns the ids of all stored sessions.
	ListSessions(ctx context.Context) ([]uuid.UUID, error)
}
