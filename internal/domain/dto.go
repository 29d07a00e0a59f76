package domain

// DTOs (Data Transfer Objects) - Requests and results of the generation use cases

type (
	// GenerateRequest struct - Input of a blocking or streaming generation
	GenerateRequest struct {
		// Prompt is a string, or an instance of InputSchema when one is set
		Prompt any
		// System overrides the session system prompt when non-empty
		System string
		// Params overrides the session params when non-empty
		Params Params
		// SaveMessages overrides the session policy when non-nil
		SaveMessages *bool

		InputSchema  Schema
		OutputSchema Schema
	}

	// CompletionRequest struct - A fully built request ready for the transport
	CompletionRequest struct {
		URL         string
		Headers     map[string]string
		Body        map[string]any
		UserMessage ChatMessage
	}

	// GenerationResult struct - Output of a blocking generation
	GenerationResult struct {
		Content string
		// Value holds the decoded structured output when an output schema was requested
		Value any
		// Message is the appended assistant message; nil for structured output
		Message *ChatMessage
		Usage   Usage
	}

	// GenerationOutcome struct - Async delivery of a blocking generation
	GenerationOutcome struct {
		Result *GenerationResult
		Err    error
	}

	// StreamDelta struct - One streamed fragment and the text accumulated so far
	StreamDelta struct {
		Delta    string `json:"delta"`
		Response string `json:"response"`
	}

	// StreamEvent struct - Async delivery of a stream. The last event has Done set
	// and carries the stream error, if any.
	StreamEvent struct {
		Delta StreamDelta
		Done  bool
		Err   error
	}

	// ToolRequest struct - Input of a tool-routed generation
	ToolRequest struct {
		Prompt       string
		Tools        []Tool
		System       string
		Params       Params
		SaveMessages *bool
	}

	// ToolResponse struct - Output of a tool-routed generation. Tool is nil when no tool was used.
	ToolResponse struct {
		Tool     *string        `json:"tool"`
		Context  string         `json:"context,omitempty"`
		Response string         `json:"response"`
		Extra    map[string]any `json:"extra,omitempty"`
	}

	// ToolOutcome struct - Async delivery of a tool-routed generation
	ToolOutcome struct {
		Result *ToolResponse
		Err    error
	}

	// ModelInfo struct - A model advertised by the completion server
	ModelInfo struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		OwnedBy string `json:"owned_by"`
	}
)

// DeltaStream is a forward-only sequence of stream deltas.
// Close releases the connection; it is safe to call more than once.
type DeltaStream interface {
	Next() bool
	Delta() StreamDelta
	Err() error
	Close() error
}
