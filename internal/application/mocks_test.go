package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"localaichat/internal/domain"
	"localaichat/internal/ports/output"
)

// Mock implementations for testing

// capturedRequest records one transport call
type capturedRequest struct {
	URL     string
	Body    map[string]any
	Headers map[string]string
}

// MockTransport implements output.CompletionTransport for testing
type MockTransport struct {
	PostFunc       func(ctx context.Context, url string, body any, headers map[string]string) ([]byte, error)
	PostStreamFunc func(ctx context.Context, url string, body any, headers map[string]string) (output.LineStream, error)

	// Responses are returned in order by Post when PostFunc is nil
	Responses [][]byte

	// Captured values for assertions
	Requests []capturedRequest
}

func (m *MockTransport) capture(url string, body any, headers map[string]string) {
	captured, _ := body.(map[string]any)
	m.Requests = append(m.Requests, capturedRequest{URL: url, Body: captured, Headers: headers})
}

func (m *MockTransport) Post(ctx context.Context, url string, body any, headers map[string]string) ([]byte, error) {
	m.capture(url, body, headers)
	if m.PostFunc != nil {
		return m.PostFunc(ctx, url, body, headers)
	}
	if len(m.Responses) == 0 {
		return nil, fmt.Errorf("no response queued")
	}
	next := m.Responses[0]
	m.Responses = m.Responses[1:]
	return next, nil
}

func (m *MockTransport) PostStream(ctx context.Context, url string, body any, headers map[string]string) (output.LineStream, error) {
	m.capture(url, body, headers)
	if m.PostStreamFunc != nil {
		return m.PostStreamFunc(ctx, url, body, headers)
	}
	return &MockLineStream{}, nil
}

// LastRequest returns the most recent captured request
func (m *MockTransport) LastRequest() capturedRequest {
	if len(m.Requests) == 0 {
		return capturedRequest{}
	}
	return m.Requests[len(m.Requests)-1]
}

// MockLineStream implements output.LineStream over fixed lines
type MockLineStream struct {
	Lines []string
	// FailWith is reported by Err once all lines are consumed
	FailWith error

	position   int
	current    string
	CloseCalls int
}

func (m *MockLineStream) Next() bool {
	if m.CloseCalls > 0 || m.position >= len(m.Lines) {
		return false
	}
	m.current = m.Lines[m.position]
	m.position++
	return true
}

func (m *MockLineStream) Line() string { return m.current }

func (m *MockLineStream) Err() error {
	if m.position >= len(m.Lines) {
		return m.FailWith
	}
	return nil
}

func (m *MockLineStream) Close() error {
	m.CloseCalls++
	return nil
}

// MockSessionRepository implements output.SessionRepository for testing
type MockSessionRepository struct {
	GetSessionFunc    func(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	UpdateSessionFunc func(ctx context.Context, session *domain.ChatSession) error

	Sessions map[uuid.UUID]*domain.ChatSession

	// Captured values for assertions
	UpdateCalls []*domain.ChatSession
	DeleteCalls []uuid.UUID
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{Sessions: map[uuid.UUID]*domain.ChatSession{}}
}

func (m *MockSessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return m.Sessions[id], nil
}

func (m *MockSessionRepository) UpdateSession(ctx context.Context, session *domain.ChatSession) error {
	m.UpdateCalls = append(m.UpdateCalls, session)
	if m.UpdateSessionFunc != nil {
		return m.UpdateSessionFunc(ctx, session)
	}
	m.Sessions[session.ID] = session
	return nil
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	delete(m.Sessions, id)
	return nil
}

func (m *MockSessionRepository) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.Sessions))
	for id := range m.Sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

// completionJSON builds a blocking completion body
func completionJSON(content string, prompt, completion int) []byte {
	return []byte(fmt.Sprintf(
		`{"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}],"usage":{"prompt_tokens":%d,"completion_tokens":%d,"total_tokens":%d}}`,
		content, prompt, completion, prompt+completion))
}

// deltaLine builds one event-stream data line
func deltaLine(content string) string {
	return fmt.Sprintf(`data: {"choices":[{"index":0,"delta":{"content":%q}}]}`, content)
}

func newTestSession() *domain.ChatSession {
	settings := domain.DefaultSessionSettings()
	settings.Model = "test-model"
	settings.Auth = "secret-key"
	return domain.NewChatSession(settings)
}

func boolPtr(b bool) *bool { return &b }
