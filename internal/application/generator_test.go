package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"localaichat/internal/domain"
	"localaichat/pkg/schema"
)

func TestGenAppendsUserAndAssistant(t *testing.T) {
	transport := &MockTransport{Responses: [][]byte{completionJSON(" Hi there!", 10, 4)}}
	service := NewChatService(transport, domain.ToolRouterConfig{})
	session := newTestSession()

	result, err := service.Gen(context.Background(), session, domain.GenerateRequest{Prompt: "Hello"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Content != " Hi there!" {
		t.Errorf("expected content unchanged, got %q", result.Content)
	}
	if len(session.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(session.Messages))
	}
	if session.Messages[0].Role != domain.ChatMessageRoleUser || session.Messages[0].Content != "Hello" {
		t.Errorf("expected user message first, got %+v", session.Messages[0])
	}
	assistant := session.Messages[1]
	if assistant.Role != domain.ChatMessageRoleAssistant {
		t.Errorf("expected assistant role, got %s", assistant.Role)
	}
	if assistant.FinishReason != "stop" {
		t.Errorf("expected finish reason stop, got %q", assistant.FinishReason)
	}
	if assistant.TotalLength == nil || *assistant.TotalLength != 14 {
		t.Errorf("expected total length 14, got %v", assistant.TotalLength)
	}
	if result.Message == nil || result.Message.ID != assistant.ID {
		t.Error("expected result to carry the appended assistant message")
	}
}

func TestGenAccumulatesUsageRegardlessOfSave(t *testing.T) {
	transport := &MockTransport{Responses: [][]byte{
		completionJSON("a", 10, 2),
		completionJSON("b", 20, 3),
	}}
	service := NewChatService(transport, domain.ToolRouterConfig{})
	session := newTestSession()

	if _, err := service.Gen(context.Background(), session, domain.GenerateRequest{Prompt: "one"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.Gen(context.Background(), session, domain.GenerateRequest{Prompt: "two", SaveMessages: boolPtr(false)}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if session.TotalPromptLength != 30 {
		t.Errorf("expected prompt length 30, got %d", session.TotalPromptLength)
	}
	if session.TotalCompletionLength != 5 {
		t.Errorf("expected completion length 5, got %d", session.TotalCompletionLength)
	}
	if session.TotalLength != 35 {
		t.Errorf("expected total length 35, got %d", session.TotalLength)
	}
	if len(session.Messages) != 2 {
		t.Errorf("expected only the saved exchange, got %d messages", len(session.Messages))
	}
}

func TestGenSessionPolicyDisablesSaving(t *testing.T) {
	transport := &MockTransport{Responses: [][]byte{completionJSON("ok", 1, 1)}}
	service := NewChatService(transport, domain.ToolRouterConfig{})
	session := newTestSession()
	session.SaveMessages = false

	if _, err := service.Gen(context.Background(), session, domain.GenerateRequest{Prompt: "x"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(session.Messages) != 0 {
		t.Errorf("expected no messages, got %d", len(session.Messages))
	}
}

func TestGenServerErrorPayload(t *testing.T) {
	transport := &MockTransport{Responses: [][]byte{[]byte(`{"error":"model not loaded"}`)}}
	service := NewChatService(transport, domain.ToolRouterConfig{})
	session := newTestSession()

	_, err := service.Gen(context.Background(), session, domain.GenerateRequest{Prompt: "x"})

	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Error("expected error to match ErrGenerationFailed")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("expected error to include payload, got %q", err.Error())
	}
	if len(session.Messages) != 0 || session.TotalLength != 0 {
		t.Error("expected session untouched on failure")
	}
}

func TestGenMissingUsageFails(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}]}`)
	service := NewChatService(&MockTransport{Responses: [][]byte{body}}, domain.ToolRouterConfig{})

	_, err := service.Gen(context.Background(), newTestSession(), domain.GenerateRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenTransportErrorPassesThrough(t *testing.T) {
	transportErr := errors.New("connection refused")
	transport := &MockTransport{
		PostFunc: func(ctx context.Context, url string, body any, headers map[string]string) ([]byte, error) {
			return nil, transportErr
		},
	}
	service := NewChatService(transport, domain.ToolRouterConfig{})

	_, err := service.Gen(context.Background(), newTestSession(), domain.GenerateRequest{Prompt: "x"})
	if err != transportErr {
		t.Errorf("expected transport error unchanged, got %v", err)
	}
}

func TestGenStructuredOutput(t *testing.T) {
	transport := &MockTransport{Responses: [][]byte{
		completionJSON(`{"city":"Oslo","temperature_c":4.5}`, 30, 12),
	}}
	service := NewChatService(transport, domain.ToolRouterConfig{})
	session := newTestSession()

	result, err := service.Gen(context.Background(), session, domain.GenerateRequest{
		Prompt:       weatherQuery{City: "Oslo"},
		InputSchema:  schema.MustFor[weatherQuery](),
		OutputSchema: schema.MustFor[weatherReport](),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	report, ok := schema.As[weatherReport](result.Value)
	if !ok {
		t.Fatalf("expected weatherReport, got %T", result.Value)
	}
	if report.City != "Oslo" || report.TemperatureC != 4.5 {
		t.Errorf("expected decoded report, got %+v", report)
	}
	if len(session.Messages) != 0 {
		t.Errorf("expected no messages on structured path, got %d", len(session.Messages))
	}
	if session.TotalLength != 42 {
		t.Errorf("expected usage accumulated to 42, got %d", session.TotalLength)
	}

	schemas := transport.LastRequest().Body[domain.ParamJSONSchema].(map[string]any)
	if len(schemas) != 2 {
		t.Errorf("expected both schemas sent, got %d", len(schemas))
	}
}

func TestGenStructuredOutputMismatch(t *testing.T) {
	transport := &MockTransport{Responses: [][]byte{completionJSON(`{"town":"Oslo"}`, 1, 1)}}
	service := NewChatService(transport, domain.ToolRouterConfig{})

	_, err := service.Gen(context.Background(), newTestSession(), domain.GenerateRequest{
		Prompt:       "weather in Oslo?",
		OutputSchema: schema.MustFor[weatherReport](),
	})

	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !errors.Is(err, schema.ErrInvalidDocument) {
		t.Errorf("expected cause ErrInvalidDocument, got %v", genErr.Cause)
	}
}

func TestGenAsyncDeliversOneOutcome(t *testing.T) {
	transport := &MockTransport{Responses: [][]byte{completionJSON("async", 1, 1)}}
	service := NewChatService(transport, domain.ToolRouterConfig{})
	session := newTestSession()

	outcomes := service.GenAsync(context.Background(), session, domain.GenerateRequest{Prompt: "x"})

	outcome, ok := <-outcomes
	if !ok {
		t.Fatal("expected an outcome")
	}
	if outcome.Err != nil {
		t.Fatalf("expected no error, got %v", outcome.Err)
	}
	if outcome.Result.Content != "async" {
		t.Errorf("expected content async, got %q", outcome.Result.Content)
	}
	if _, ok := <-outcomes; ok {
		t.Error("expected channel closed after one outcome")
	}
	if len(session.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(session.Messages))
	}
}
