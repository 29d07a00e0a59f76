package application

import (
	"context"

	"localaichat/internal/domain"
)

// GenAsync runs Gen on its own goroutine. The channel yields exactly one outcome.
func (s *ChatService) GenAsync(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) <-chan domain.GenerationOutcome {
	out := make(chan domain.GenerationOutcome, 1)
	go func() {
		defer close(out)
		result, err := s.Gen(ctx, session, request)
		out <- domain.GenerationOutcome{Result: result, Err: err}
	}()
	return out
}

// GenWithToolsAsync runs GenWithTools on its own goroutine. The channel yields exactly one outcome.
func (s *ChatService) GenWithToolsAsync(ctx context.Context, session *domain.ChatSession, request domain.ToolRequest) <-chan domain.ToolOutcome {
	out := make(chan domain.ToolOutcome, 1)
	go func() {
		defer close(out)
		result, err := s.GenWithTools(ctx, session, request)
		out <- domain.ToolOutcome{Result: result, Err: err}
	}()
	return out
}
