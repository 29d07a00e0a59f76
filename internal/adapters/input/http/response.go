package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"localaichat/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// Created response
	Created = Status{Code: http.StatusCreated, Message: []string{"Created"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Session not found"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, The completion server returned an unusable response"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// SessionResponse struct - HTTP response DTO for a session and its history
	SessionResponse struct {
		ID                    uuid.UUID            `json:"id"`
		Title                 string               `json:"title,omitempty"`
		Model                 string               `json:"model"`
		System                string               `json:"system"`
		Params                domain.Params        `json:"params"`
		SaveMessages          bool                 `json:"save_messages"`
		RecentMessages        int                  `json:"recent_messages"`
		Messages              []domain.ChatMessage `json:"messages"`
		TotalPromptLength     int                  `json:"total_prompt_length"`
		TotalCompletionLength int                  `json:"total_completion_length"`
		TotalLength           int                  `json:"total_length"`
		CreatedAt             time.Time            `json:"created_at"`
		LastAccessTime        time.Time            `json:"last_access_time"`
	}

	// SessionListResponse struct - HTTP response DTO for session ids
	SessionListResponse struct {
		Sessions []uuid.UUID `json:"sessions"`
	}

	// GenerateResponse struct - HTTP response DTO for a blocking generation
	GenerateResponse struct {
		Response string       `json:"response"`
		Usage    domain.Usage `json:"usage"`
	}

	// ToolResponse struct - HTTP response DTO for a tool-routed generation
	ToolResponse struct {
		Tool     *string        `json:"tool"`
		Context  string         `json:"context,omitempty"`
		Response string         `json:"response"`
		Extra    map[string]any `json:"extra,omitempty"`
	}

	// ModelListResponse struct - HTTP response DTO for served models
	ModelListResponse struct {
		Models []domain.ModelInfo `json:"models"`
	}
)

func newSessionResponse(session *domain.ChatSession) SessionResponse {
	return SessionResponse{
		ID:                    session.ID,
		Title:                 session.Title,
		Model:                 session.Model,
		System:                session.System,
		Params:                session.Params,
		SaveMessages:          session.SaveMessages,
		RecentMessages:        session.RecentMessages,
		Messages:              session.GetHistory(),
		TotalPromptLength:     session.TotalPromptLength,
		TotalCompletionLength: session.TotalCompletionLength,
		TotalLength:           session.TotalLength,
		CreatedAt:             session.CreatedAt,
		LastAccessTime:        session.LastAccessTime,
	}
}
