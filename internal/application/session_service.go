package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"localaichat/internal/domain"
	"localaichat/internal/ports/input"
	"localaichat/internal/ports/output"
)

// Compile-time check to ensure SessionService implements the input port
var _ input.SessionService = (*SessionService)(nil)

// SessionService struct - Application service managing stored sessions
type SessionService struct {
	repo     output.SessionRepository
	defaults domain.SessionSettings
}

// NewSessionService func - Creates new session service.
// defaults are applied to every new session; Auth is reattached on load.
func NewSessionService(repo output.SessionRepository, defaults domain.SessionSettings) *SessionService {
	return &SessionService{
		repo:     repo,
		defaults: defaults,
	}
}

// NewSession func - Use case: Create and store a new session
func (s *SessionService) NewSession(ctx context.Context, overrides domain.SessionOverrides) (*domain.ChatSession, error) {
	session := domain.NewChatSession(s.defaults.Apply(overrides))
	session.Title = overrides.Title

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		logrus.Errorf("Failed to store new session: %v", err)
		return nil, err
	}
	logrus.Debugf("Session created: %s", session.ID)
	return session, nil
}

// GetSession func - Use case: Load a session by id
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	session.Auth = s.defaults.Auth
	return session, nil
}

// SaveSession func - Use case: Persist the current state of a session
func (s *SessionService) SaveSession(ctx context.Context, session *domain.ChatSession) error {
	return s.repo.UpdateSession(ctx, session)
}

// ResetSession func - Use case: Clear history and counters, keeping id and settings
func (s *SessionService) ResetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	existing, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	fresh := domain.NewChatSession(existing.Settings())
	fresh.ID = existing.ID
	fresh.Title = existing.Title
	fresh.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateSession(ctx, fresh); err != nil {
		logrus.Errorf("Failed to reset session %s: %v", id, err)
		return nil, err
	}
	return fresh, nil
}

// DeleteSession func - Use case: Remove a session
func (s *SessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSession(ctx, id)
}

// ListSessions func - Use case: List stored session ids
func (s *SessionService) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListSessions(ctx)
}
