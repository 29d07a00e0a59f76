package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"localaichat/internal/domain"
)

const groundingInstruction = "\n\nYou MUST use information from the context in your response."

// GenWithTools asks the model to pick a tool with one biased token, runs the
// chosen tool and answers with its context. Only the original prompt and the
// final answer reach the history; the classification call never does.
func (s *ChatService) GenWithTools(ctx context.Context, session *domain.ChatSession, request domain.ToolRequest) (*domain.ToolResponse, error) {
	index, err := s.selectTool(ctx, session, request)
	if err != nil {
		return nil, err
	}

	if index == 0 {
		result, err := s.Gen(ctx, session, domain.GenerateRequest{
			Prompt:       request.Prompt,
			System:       request.System,
			Params:       request.Params,
			SaveMessages: request.SaveMessages,
		})
		if err != nil {
			return nil, err
		}
		return &domain.ToolResponse{Response: result.Content}, nil
	}

	tool := request.Tools[index-1]
	output, err := tool.Call(ctx, request.Prompt)
	if err != nil {
		return nil, fmt.Errorf("tool %s failed: %w", tool.Name(), err)
	}
	toolContext, extra, err := normalizeToolOutput(output)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", tool.Name(), err)
	}

	system := request.System
	if system == "" {
		system = session.System
	}
	noSave := false
	answer, err := s.Gen(ctx, session, domain.GenerateRequest{
		Prompt:       fmt.Sprintf("Context: %s\n\nUser: %s", toolContext, request.Prompt),
		System:       system + groundingInstruction,
		Params:       request.Params,
		SaveMessages: &noSave,
	})
	if err != nil {
		return nil, err
	}

	user := domain.NewChatMessage(domain.ChatMessageRoleUser, request.Prompt)
	assistant := domain.NewChatMessage(domain.ChatMessageRoleAssistant, answer.Content)
	session.AddMessages(&user, &assistant, request.SaveMessages)

	name := tool.Name()
	return &domain.ToolResponse{
		Tool:     &name,
		Context:  toolContext,
		Response: answer.Content,
		Extra:    extra,
	}, nil
}

// selectTool runs the constrained classification call and returns an index in 0..len(tools)
func (s *ChatService) selectTool(ctx context.Context, session *domain.ChatSession, request domain.ToolRequest) (int, error) {
	noSave := false
	classification, err := s.Gen(ctx, session, domain.GenerateRequest{
		Prompt: request.Prompt,
		System: s.router.Menu(request.Tools),
		Params: domain.Params{
			domain.ParamTemperature: 0.0,
			domain.ParamMaxTokens:   1,
			domain.ParamLogitBias:   s.router.LogitBias(len(request.Tools)),
		},
		SaveMessages: &noSave,
	})
	if err != nil {
		return 0, err
	}

	index, err := strconv.Atoi(strings.TrimSpace(classification.Content))
	if err != nil {
		return 0, &domain.GenerationError{
			Message: "tool selection is not a number",
			Raw:     []byte(classification.Content),
			Cause:   err,
		}
	}
	if index < 0 || index > len(request.Tools) {
		return 0, &domain.RoutingError{Index: index, ToolCount: len(request.Tools)}
	}
	return index, nil
}

// normalizeToolOutput turns a tool result into its context and any extra keys
func normalizeToolOutput(output any) (string, map[string]any, error) {
	switch typed := output.(type) {
	case string:
		return typed, nil, nil
	case map[string]string:
		converted := make(map[string]any, len(typed))
		for k, v := range typed {
			converted[k] = v
		}
		return normalizeToolOutput(converted)
	case map[string]any:
		value, ok := typed[domain.ToolContextKey]
		if !ok {
			return "", nil, fmt.Errorf("%w: missing %q key", domain.ErrInvalidToolResult, domain.ToolContextKey)
		}
		var extra map[string]any
		for k, v := range typed {
			if k == domain.ToolContextKey {
				continue
			}
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = v
		}
		if text, ok := value.(string); ok {
			return text, extra, nil
		}
		return fmt.Sprint(value), extra, nil
	default:
		return "", nil, fmt.Errorf("%w: unsupported type %T", domain.ErrInvalidToolResult, output)
	}
}
