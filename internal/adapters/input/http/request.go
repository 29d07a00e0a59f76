package http

import "localaichat/internal/domain"

type (
	// CreateSessionRequest struct - HTTP request DTO
	CreateSessionRequest struct {
		Title          string         `json:"title" validate:"omitempty,max=200"`
		Model          string         `json:"model" validate:"omitempty,max=200"`
		System         string         `json:"system"`
		Params         map[string]any `json:"params"`
		SaveMessages   *bool          `json:"save_messages"`
		RecentMessages *int           `json:"recent_messages" validate:"omitempty,gte=0"`
	}

	// GenerateRequest struct - HTTP request DTO for gen and stream
	GenerateRequest struct {
		Prompt       string         `json:"prompt" validate:"required"`
		System       string         `json:"system"`
		Params       map[string]any `json:"params"`
		SaveMessages *bool          `json:"save_messages"`
	}

	// ToolsRequest struct - HTTP request DTO for tool-routed generation
	ToolsRequest struct {
		Prompt       string         `json:"prompt" validate:"required"`
		System       string         `json:"system"`
		Params       map[string]any `json:"params"`
		SaveMessages *bool          `json:"save_messages"`
		// Tools restricts routing to the named server tools; empty means all
		Tools []string `json:"tools" validate:"omitempty,dive,required"`
	}
)

func (r CreateSessionRequest) toOverrides() domain.SessionOverrides {
	return domain.SessionOverrides{
		Title:          r.Title,
		Model:          r.Model,
		System:         r.System,
		Params:         domain.Params(r.Params),
		SaveMessages:   r.SaveMessages,
		RecentMessages: r.RecentMessages,
	}
}

func (r GenerateRequest) toDomain() domain.GenerateRequest {
	return domain.GenerateRequest{
		Prompt:       r.Prompt,
		System:       r.System,
		Params:       domain.Params(r.Params),
		SaveMessages: r.SaveMessages,
	}
}

func (r ToolsRequest) toDomain(tools []domain.Tool) domain.ToolRequest {
	return domain.ToolRequest{
		Prompt:       r.Prompt,
		Tools:        tools,
		System:       r.System,
		Params:       domain.Params(r.Params),
		SaveMessages: r.SaveMessages,
	}
}
