package application

import (
	"localaichat/internal/domain"
	"localaichat/internal/ports/input"
	"localaichat/internal/ports/output"
)

// Compile-time check to ensure ChatService implements the input port
var _ input.ChatService = (*ChatService)(nil)

// ChatService struct - Application service implementing the generation use cases.
// It holds no per-conversation state: every call works on the session it is given.
type ChatService struct {
	transport output.CompletionTransport
	router    domain.ToolRouterConfig
}

// NewChatService func - Creates new chat service.
// A zero router config falls back to domain.DefaultToolRouterConfig.
func NewChatService(transport output.CompletionTransport, router domain.ToolRouterConfig) *ChatService {
	defaults := domain.DefaultToolRouterConfig()
	if router.Prompt == "" {
		router.Prompt = defaults.Prompt
	}
	if router.BiasWeight == 0 {
		router.BiasWeight = defaults.BiasWeight
	}
	if router.TokenOffset == 0 {
		router.TokenOffset = defaults.TokenOffset
	}
	return &ChatService{
		transport: transport,
		router:    router,
	}
}
