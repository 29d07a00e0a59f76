package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default session values
const (
	DefaultAPIURL      = "http://localhost:8080/v1/chat/completions"
	DefaultSystem      = "You are a helpful assistant."
	DefaultTemperature = 0.3
)

// SessionSettings holds the defaults a new session starts from
type SessionSettings struct {
	APIURL         string
	Model          string
	Auth           Secret
	System         string
	Params         Params
	SaveMessages   bool
	RecentMessages int
}

// DefaultSessionSettings returns the settings used when nothing is configured
func DefaultSessionSettings() SessionSettings {
	return SessionSettings{
		APIURL:       DefaultAPIURL,
		System:       DefaultSystem,
		Params:       Params{ParamTemperature: DefaultTemperature},
		SaveMessages: true,
	}
}

// SessionOverrides holds per-session changes to the configured defaults.
// Zero values keep the default.
type SessionOverrides struct {
	Title          string
	Model          string
	System         string
	Params         Params
	SaveMessages   *bool
	RecentMessages *int
}

// Apply returns settings with the overrides applied
func (s SessionSettings) Apply(o SessionOverrides) SessionSettings {
	out := s
	out.Params = s.Params.Clone()
	if o.Model != "" {
		out.Model = o.Model
	}
	if o.System != "" {
		out.System = o.System
	}
	if len(o.Params) > 0 {
		out.Params = o.Params.Clone()
	}
	if o.SaveMessages != nil {
		out.SaveMessages = *o.SaveMessages
	}
	if o.RecentMessages != nil {
		out.RecentMessages = *o.RecentMessages
	}
	return out
}

// ChatSession represents a conversation with the completion server.
// It is not safe for concurrent use; callers serialize access to one session.
type ChatSession struct {
	ID             uuid.UUID     `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	Title          string        `json:"title,omitempty"`
	APIURL         string        `json:"api_url"`
	Model          string        `json:"model"`
	Auth           Secret        `json:"-"`
	System         string        `json:"system"`
	Params         Params        `json:"params"`
	SaveMessages   bool          `json:"save_messages"`
	RecentMessages int           `json:"recent_messages,omitempty"`
	Messages       []ChatMessage `json:"messages"`

	TotalPromptLength     int `json:"total_prompt_length"`
	TotalCompletionLength int `json:"total_completion_length"`
	TotalLength           int `json:"total_length"`

	LastAccessTime time.Time `json:"last_access_time"`
}

// NewChatSession creates a new session from settings
func NewChatSession(settings SessionSettings) *ChatSession {
	apiURL := settings.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	system := settings.System
	if system == "" {
		system = DefaultSystem
	}
	now := time.Now()
	return &ChatSession{
		ID:             uuid.New(),
		CreatedAt:      now,
		APIURL:         apiURL,
		Model:          settings.Model,
		Auth:           settings.Auth,
		System:         system,
		Params:         settings.Params.Clone(),
		SaveMessages:   settings.SaveMessages,
		RecentMessages: settings.RecentMessages,
		Messages:       make([]ChatMessage, 0),
		LastAccessTime: now,
	}
}

// IsExpired checks if the session has been idle longer than timeout.
// A non-positive timeout never expires.
func (s *ChatSession) IsExpired(timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}
	return time.Since(s.LastAccessTime) > timeout
}

// FormatInputMessages builds the transmitted message list:
// the system message, the recent history, then the new user message.
func (s *ChatSession) FormatInputMessages(system, user ChatMessage) []WireMessage {
	history := s.Messages
	if s.RecentMessages > 0 && len(history) > s.RecentMessages {
		history = history[len(history)-s.RecentMessages:]
	}

	messages := make([]WireMessage, 0, len(history)+2)
	messages = append(messages, system.Wire())
	for _, m := range history {
		messages = append(messages, m.Wire())
	}
	return append(messages, user.Wire())
}

// AddMessages appends the given messages to the history.
// A nil save uses the session's SaveMessages policy.
func (s *ChatSession) AddMessages(user, assistant *ChatMessage, save *bool) {
	toSave := s.SaveMessages
	if save != nil {
		toSave = *save
	}
	if !toSave {
		return
	}
	if user != nil {
		s.Messages = append(s.Messages, *user)
	}
	if assistant != nil {
		s.Messages = append(s.Messages, *assistant)
	}
}

// AddUsage accumulates one call's usage into the running counters
func (s *ChatSession) AddUsage(usage Usage) {
	s.TotalPromptLength += usage.PromptTokens
	s.TotalCompletionLength += usage.CompletionTokens
	s.TotalLength += usage.TotalTokens
}

// GetHistory returns a copy of the conversation history
func (s *ChatSession) GetHistory() []ChatMessage {
	if len(s.Messages) == 0 {
		return []ChatMessage{}
	}

	// Return a copy to prevent external modification
	history := make([]ChatMessage, len(s.Messages))
	copy(history, s.Messages)
	return history
}

// Settings returns the settings the session was configured with
func (s *ChatSession) Settings() SessionSettings {
	return SessionSettings{
		APIURL:         s.APIURL,
		Model:          s.Model,
		Auth:           s.Auth,
		System:         s.System,
		Params:         s.Params.Clone(),
		SaveMessages:   s.SaveMessages,
		RecentMessages: s.RecentMessages,
	}
}

// Clone returns a deep copy of the session.
// Messages are values, so copying the slice is enough.
func (s *ChatSession) Clone() *ChatSession {
	out := *s
	out.Params = s.Params.Clone()
	out.Messages = s.GetHistory()
	return &out
}
