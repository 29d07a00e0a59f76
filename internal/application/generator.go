package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"localaichat/internal/domain"
)

// Response paths of a blocking chat completion
const (
	pathContent          = "choices.0.message.content"
	pathRole             = "choices.0.message.role"
	pathFinishReason     = "choices.0.finish_reason"
	pathPromptTokens     = "usage.prompt_tokens"
	pathCompletionTokens = "usage.completion_tokens"
	pathTotalTokens      = "usage.total_tokens"
)

type completion struct {
	content      string
	role         string
	finishReason string
	usage        domain.Usage
}

// Gen runs one request/response cycle and updates the session.
// Without an output schema the (user, assistant) pair is appended under the
// save policy; with one the decoded value is returned and nothing is appended.
// Usage is accumulated in both cases.
func (s *ChatService) Gen(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) (*domain.GenerationResult, error) {
	prepared, err := s.prepareRequest(session, request, false)
	if err != nil {
		return nil, err
	}

	raw, err := s.transport.Post(ctx, prepared.URL, prepared.Body, prepared.Headers)
	if err != nil {
		return nil, err
	}

	parsed, err := parseCompletion(raw, request.OutputSchema == nil)
	if err != nil {
		return nil, err
	}

	result := &domain.GenerationResult{
		Content: parsed.content,
		Usage:   parsed.usage,
	}

	if request.OutputSchema == nil {
		assistant := domain.NewChatMessage(domain.ChatMessageRole(parsed.role), parsed.content).
			WithUsage(parsed.finishReason, parsed.usage)
		session.AddMessages(&prepared.UserMessage, &assistant, request.SaveMessages)
		result.Message = &assistant
	} else {
		value, err := request.OutputSchema.Decode([]byte(parsed.content))
		if err != nil {
			return nil, &domain.GenerationError{
				Message: "structured output does not match " + request.OutputSchema.Name(),
				Raw:     raw,
				Cause:   err,
			}
		}
		result.Value = value
	}

	session.AddUsage(parsed.usage)

	logrus.Debugf("Generation complete, session: %s, tokens: %d/%d/%d",
		session.ID, parsed.usage.PromptTokens, parsed.usage.CompletionTokens, parsed.usage.TotalTokens)

	return result, nil
}

// parseCompletion extracts content and usage from a completion body.
// full additionally requires role and finish_reason.
func parseCompletion(raw []byte, full bool) (*completion, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &domain.GenerationError{Message: "response is not valid JSON", Raw: raw}
	}

	paths := []string{pathContent, pathPromptTokens, pathCompletionTokens, pathTotalTokens}
	if full {
		paths = append(paths, pathRole, pathFinishReason)
	}
	results := gjson.GetManyBytes(raw, paths...)
	for i, result := range results {
		if !result.Exists() {
			return nil, &domain.GenerationError{Message: "response is missing " + paths[i], Raw: raw}
		}
	}

	parsed := &completion{
		content: results[0].String(),
		usage: domain.Usage{
			PromptTokens:     int(results[1].Int()),
			CompletionTokens: int(results[2].Int()),
			TotalTokens:      int(results[3].Int()),
		},
	}
	if full {
		parsed.role = results[4].String()
		parsed.finishReason = results[5].String()
	}
	return parsed, nil
}
