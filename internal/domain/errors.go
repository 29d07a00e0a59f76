package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMismatch indicates the prompt is not an instance of the declared input schema
	ErrSchemaMismatch = errors.New("prompt does not match input schema")

	// ErrInvalidPrompt indicates a non-string prompt was given without an input schema
	ErrInvalidPrompt = errors.New("prompt must be a string")

	// ErrGenerationFailed indicates the server response carried no usable generation
	ErrGenerationFailed = errors.New("no ai generation")

	// ErrRouting indicates the model selected a tool index outside the menu
	ErrRouting = errors.New("tool routing failed")

	// ErrStreamingSchema indicates an output schema was requested on the streaming path
	ErrStreamingSchema = errors.New("structured output is not supported when streaming")

	// ErrInvalidToolResult indicates a tool returned neither a string nor a map with a context key
	ErrInvalidToolResult = errors.New("invalid tool result")

	// ErrSessionNotFound indicates no session exists with the given id
	ErrSessionNotFound = errors.New("session not found")

	// ErrServerStatus indicates the completion server answered a stream request with an error status
	ErrServerStatus = errors.New("completion server error")
)

// GenerationError is returned when a completion response lacks the expected fields.
// Raw holds the server payload for diagnosis.
type GenerationError struct {
	Message string
	Raw     []byte
	Cause   error
}

func (e *GenerationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected response"
	}
	if len(e.Raw) > 0 {
		return fmt.Sprintf("%s: %s: %s", ErrGenerationFailed, msg, e.Raw)
	}
	return fmt.Sprintf("%s: %s", ErrGenerationFailed, msg)
}

// Is reports ErrGenerationFailed as a match
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// RoutingError is returned when the classification token names no tool
type RoutingError struct {
	Index     int
	ToolCount int
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("%s: index %d outside 0..%d", ErrRouting, e.Index, e.ToolCount)
}

// Is reports ErrRouting as a match
func (e *RoutingError) Is(target error) bool {
	return target == ErrRouting
}
