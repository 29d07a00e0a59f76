package output

import (
	"context"

	"localaichat/internal/domain"
)

// CompletionTransport interface - Output port
// Defines what the application needs from the HTTP layer to talk to the
// completion server. Implementations must not retry and must return
// transport failures unchanged.
type CompletionTransport interface {
	// Post sends body as JSON and returns the raw response body regardless of status.
	Post(ctx context.Context, url string, body any, headers map[string]string) ([]byte, error)

	// PostStream sends body as JSON and returns the response as a sequence of lines.
	// The caller must Close the returned stream.
	PostStream(ctx context.Context, url string, body any, headers map[string]string) (LineStream, error)
}

// LineStream is a forward-only sequence of response lines.
// Close releases the underlying connection and may be called more than once.
type LineStream interface {
	Next() bool
	Line() string
	Err() error
	Close() error
}

// ModelLister interface - Optional output port for servers exposing /v1/models
type ModelLister interface {
	ListModels(ctx context.Context, apiURL string) ([]domain.ModelInfo, error)
}
