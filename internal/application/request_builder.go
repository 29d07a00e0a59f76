package application

import (
	"fmt"

	"localaichat/internal/domain"
)

// prepareRequest builds headers, body and the user message for one call.
// It does not touch the session; the caller persists the user message.
func (s *ChatService) prepareRequest(session *domain.ChatSession, request domain.GenerateRequest, stream bool) (*domain.CompletionRequest, error) {
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + session.Auth.Reveal(),
	}

	system := request.System
	if system == "" {
		system = session.System
	}
	systemMessage := domain.NewChatMessage(domain.ChatMessageRoleSystem, system)

	var userMessage domain.ChatMessage
	if request.InputSchema != nil {
		content, err := request.InputSchema.Encode(request.Prompt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSchemaMismatch, err)
		}
		userMessage = domain.NewChatMessage(domain.ChatMessageRoleUser, content)
		userMessage.Name = request.InputSchema.Name()
	} else {
		prompt, ok := request.Prompt.(string)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", domain.ErrInvalidPrompt, request.Prompt)
		}
		userMessage = domain.NewChatMessage(domain.ChatMessageRoleUser, prompt)
	}

	params := request.Params
	if len(params) == 0 {
		params = session.Params
	}
	params = params.Clone()

	if request.InputSchema != nil || request.OutputSchema != nil {
		schemas := map[string]any{}
		if request.InputSchema != nil {
			schemas["input_schema"] = request.InputSchema.JSONSchema()
		}
		if request.OutputSchema != nil {
			schemas["output_schema"] = request.OutputSchema.JSONSchema()
		}
		params[domain.ParamJSONSchema] = schemas
	}

	body := map[string]any{
		"model":    session.Model,
		"messages": session.FormatInputMessages(systemMessage, userMessage),
		"stream":   stream,
	}
	for key, value := range params {
		body[key] = value
	}

	return &domain.CompletionRequest{
		URL:         session.APIURL,
		Headers:     headers,
		Body:        body,
		UserMessage: userMessage,
	}, nil
}
