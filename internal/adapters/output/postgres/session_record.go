package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"localaichat/internal/domain"
)

// SessionRecord is the chat_sessions row
type SessionRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title          string
	APIURL         string `gorm:"column:api_url"`
	Model          string
	System         string
	Params         string `gorm:"type:text"`
	SaveMessages   bool
	RecentMessages int

	TotalPromptLength     int
	TotalCompletionLength int
	TotalLength           int

	LastAccessTime time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Messages []MessageRecord `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by SessionRecord
func (SessionRecord) TableName() string {
	return "chat_sessions"
}

// MessageRecord is the chat_messages row
type MessageRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID        uuid.UUID `gorm:"type:uuid;index"`
	Position         int
	Role             string
	Content          string `gorm:"type:text"`
	Name             string
	FinishReason     string
	PromptLength     *int
	CompletionLength *int
	TotalLength      *int
	ReceivedAt       time.Time
}

// TableName overrides the table name used by MessageRecord
func (MessageRecord) TableName() string {
	return "chat_messages"
}

// MigrateDatabase creates or updates the session tables
func MigrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(&SessionRecord{}, &MessageRecord{})
}

func toRecord(session *domain.ChatSession) (*SessionRecord, error) {
	params, err := json.Marshal(session.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}

	messages := make([]MessageRecord, len(session.Messages))
	for i, m := range session.Messages {
		messages[i] = MessageRecord{
			ID:               m.ID,
			SessionID:        session.ID,
			Position:         i,
			Role:             string(m.Role),
			Content:          m.Content,
			Name:             m.Name,
			FinishReason:     m.FinishReason,
			PromptLength:     m.PromptLength,
			CompletionLength: m.CompletionLength,
			TotalLength:      m.TotalLength,
			ReceivedAt:       m.ReceivedAt,
		}
	}

	return &SessionRecord{
		ID:                    session.ID,
		Title:                 session.Title,
		APIURL:                session.APIURL,
		Model:                 session.Model,
		System:                session.System,
		Params:                string(params),
		SaveMessages:          session.SaveMessages,
		RecentMessages:        session.RecentMessages,
		TotalPromptLength:     session.TotalPromptLength,
		TotalCompletionLength: session.TotalCompletionLength,
		TotalLength:           session.TotalLength,
		LastAccessTime:        session.LastAccessTime,
		CreatedAt:             session.CreatedAt,
		Messages:              messages,
	}, nil
}

func fromRecord(record *SessionRecord) (*domain.ChatSession, error) {
	params := domain.Params{}
	if record.Params != "" {
		if err := json.Unmarshal([]byte(record.Params), &params); err != nil {
			return nil, fmt.Errorf("failed to decode params: %w", err)
		}
	}

	messages := make([]domain.ChatMessage, len(record.Messages))
	for i, m := range record.Messages {
		messages[i] = domain.ChatMessage{
			ID:               m.ID,
			Role:             domain.ChatMessageRole(m.Role),
			Content:          m.Content,
			Name:             m.Name,
			FinishReason:     m.FinishReason,
			PromptLength:     m.PromptLength,
			CompletionLength: m.CompletionLength,
			TotalLength:      m.TotalLength,
			ReceivedAt:       m.ReceivedAt,
		}
	}

	return &domain.ChatSession{
		ID:                    record.ID,
		CreatedAt:             record.CreatedAt,
		Title:                 record.Title,
		APIURL:                record.APIURL,
		Model:                 record.Model,
		System:                record.System,
		Params:                params,
		SaveMessages:          record.SaveMessages,
		RecentMessages:        record.RecentMessages,
		Messages:              messages,
		TotalPromptLength:     record.TotalPromptLength,
		TotalCompletionLength: record.TotalCompletionLength,
		TotalLength:           record.TotalLength,
		LastAccessTime:        record.LastAccessTime,
	}, nil
}
