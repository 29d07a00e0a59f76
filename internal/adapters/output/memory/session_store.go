package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"localaichat/internal/domain"
	"localaichat/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionRepository interface
var _ output.SessionRepository = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage
// Uses sync.Map for thread-safe concurrent access to chat sessions.
// The store keeps its own snapshot of every session and hands out copies,
// so callers never share a *ChatSession with each other.
// Sessions idle longer than timeout are dropped on access; when maxSessions
// is reached the least recently used session is evicted.
type MemorySessionStore struct {
	sessions    sync.Map
	timeout     time.Duration
	maxSessions int

	// serializes inserts so the size limit holds
	insertMu sync.Mutex
}

// entry guards one stored snapshot
type entry struct {
	mu      sync.Mutex
	session *domain.ChatSession
}

// touch returns a copy of the snapshot and refreshes its access time,
// or false when the session has expired
func (e *entry) touch(timeout time.Duration) (*domain.ChatSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.IsExpired(timeout) {
		return nil, false
	}
	e.session.LastAccessTime = time.Now()
	return e.session.Clone(), true
}

func (e *entry) expired(timeout time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.IsExpired(timeout)
}

func (e *entry) lastAccess() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.LastAccessTime
}

// NewMemorySessionStore creates a new in-memory session store.
// timeout: Duration after which idle sessions expire, 0 keeps them forever
// maxSessions: Maximum number of stored sessions, 0 for no limit
func NewMemorySessionStore(timeout time.Duration, maxSessions int) *MemorySessionStore {
	logrus.Infof("Memory session store initialized, timeout: %v, max sessions: %d", timeout, maxSessions)
	return &MemorySessionStore{
		timeout:     timeout,
		maxSessions: maxSessions,
	}
}

// GetTimeout returns the configured session timeout duration.
func (m *MemorySessionStore) GetTimeout() time.Duration {
	return m.timeout
}

// GetMaxSessions returns the configured session limit.
func (m *MemorySessionStore) GetMaxSessions() int {
	return m.maxSessions
}

// GetSession retrieves a copy of a chat session by id.
// Returns nil if the session does not exist or has expired.
// Expired sessions are deleted (lazy cleanup).
// LastAccessTime is updated for valid sessions.
func (m *MemorySessionStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	value, exists := m.sessions.Load(id)
	if !exists {
		return nil, nil
	}

	e, ok := value.(*entry)
	if !ok {
		// If data is malformed, delete and return nil
		m.sessions.Delete(id)
		return nil, nil
	}

	session, ok := e.touch(m.timeout)
	if !ok {
		m.sessions.Delete(id)
		logrus.Debugf("Session expired: %s", id)
		return nil, nil
	}
	return session, nil
}

// UpdateSession stores a snapshot of the session.
// The snapshot's LastAccessTime is set to the current time.
func (m *MemorySessionStore) UpdateSession(ctx context.Context, session *domain.ChatSession) error {
	snapshot := session.Clone()
	snapshot.LastAccessTime = time.Now()
	fresh := &entry{session: snapshot}

	if m.maxSessions <= 0 {
		m.sessions.Store(session.ID, fresh)
		return nil
	}

	m.insertMu.Lock()
	defer m.insertMu.Unlock()

	if _, exists := m.sessions.Load(session.ID); !exists {
		for m.count() >= m.maxSessions {
			m.evictOldest()
		}
	}
	m.sessions.Store(session.ID, fresh)

	return nil
}

// DeleteSession removes a chat session by id.
// This operation is idempotent - deleting a non-existent session does not return an error.
func (m *MemorySessionStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.sessions.Delete(id)
	return nil
}

// ListSessions returns the ids of all live sessions
func (m *MemorySessionStore) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	m.sessions.Range(func(key, value any) bool {
		e, ok := value.(*entry)
		if !ok || e.expired(m.timeout) {
			m.sessions.Delete(key)
			return true
		}
		ids = append(ids, key.(uuid.UUID))
		return true
	})
	return ids, nil
}

func (m *MemorySessionStore) count() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (m *MemorySessionStore) evictOldest() {
	var (
		oldestKey  any
		oldestTime time.Time
	)
	m.sessions.Range(func(key, value any) bool {
		e, ok := value.(*entry)
		if !ok {
			oldestKey = key
			return false
		}
		if accessed := e.lastAccess(); oldestKey == nil || accessed.Before(oldestTime) {
			oldestKey = key
			oldestTime = accessed
		}
		return true
	})
	if oldestKey == nil {
		return
	}
	m.sessions.Delete(oldestKey)
	logrus.Debugf("Evicted session: %v", oldestKey)
}
