package input

import (
	"context"

	"localaichat/internal/domain"
)

// ChatService interface - Input port (use case)
// Generation against one session. Every blocking method has an async twin
// running the same logic on its own goroutine.
type ChatService interface {
	// Gen runs one blocking completion and returns text or a structured value
	Gen(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) (*domain.GenerationResult, error)
	GenAsync(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) <-chan domain.GenerationOutcome

	// Stream opens a streaming completion; the session is updated once the stream is fully consumed
	Stream(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) (domain.DeltaStream, error)
	StreamAsync(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) <-chan domain.StreamEvent

	// GenWithTools lets the model pick one of the tools with a single token, then answers with its context
	GenWithTools(ctx context.Context, session *domain.ChatSession, request domain.ToolRequest) (*domain.ToolResponse, error)
	GenWithToolsAsync(ctx context.Context, session *domain.ChatSession, request domain.ToolRequest) <-chan domain.ToolOutcome
}
