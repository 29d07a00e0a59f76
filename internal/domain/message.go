package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessageRole represents the author of a conversation turn
type ChatMessageRole string

const (
	// ChatMessageRoleSystem - System prompt
	ChatMessageRoleSystem ChatMessageRole = "system"
	// ChatMessageRoleUser - User turn
	ChatMessageRoleUser ChatMessageRole = "user"
	// ChatMessageRoleAssistant - Model turn
	ChatMessageRoleAssistant ChatMessageRole = "assistant"
)

// ChatMessage represents one turn of a conversation.
// Messages are values: once appended to a session they are never modified.
type ChatMessage struct {
	ID               uuid.UUID       `json:"id"`
	Role             ChatMessageRole `json:"role"`
	Content          string          `json:"content"`
	Name             string          `json:"name,omitempty"`
	FinishReason     string          `json:"finish_reason,omitempty"`
	PromptLength     *int            `json:"prompt_length,omitempty"`
	CompletionLength *int            `json:"completion_length,omitempty"`
	TotalLength      *int            `json:"total_length,omitempty"`
	ReceivedAt       time.Time       `json:"received_at"`
}

// NewChatMessage creates a message with a fresh id and receive time
func NewChatMessage(role ChatMessageRole, content string) ChatMessage {
	return ChatMessage{
		ID:         uuid.New(),
		Role:       role,
		Content:    content,
		ReceivedAt: time.Now(),
	}
}

// WithUsage returns a copy of the message carrying the completion metadata
func (m ChatMessage) WithUsage(finishReason string, usage Usage) ChatMessage {
	prompt, completion, total := usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens
	m.FinishReason = finishReason
	m.PromptLength = &prompt
	m.CompletionLength = &completion
	m.TotalLength = &total
	return m
}

// WireMessage is the subset of a message transmitted to the completion server
type WireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// Wire converts the message to its transmitted form
func (m ChatMessage) Wire() WireMessage {
	return WireMessage{
		Role:    string(m.Role),
		Content: m.Content,
		Name:    m.Name,
	}
}

// Usage holds the server-reported token counts of one completion call
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
