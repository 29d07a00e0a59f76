package domain

import (
	"context"
	"fmt"
	"strings"
)

// DefaultToolPrompt is the classification instruction; {tools} is replaced by the numbered menu.
const DefaultToolPrompt = `From the list of tools below:
- Reply ONLY with the number of the tool appropriate in response to the user's last message.
- If no tool is appropriate, ONLY reply with "0".

{tools}`

// Tool routing defaults. Token ids 15..24 are the digits 0..9 in the llama vocabulary.
const (
	DefaultToolBiasWeight  = 100
	DefaultToolTokenOffset = 15
)

// ToolContextKey is the key a tool result must carry
const ToolContextKey = "context"

// Tool is a caller-supplied function the model can select to ground its answer.
// Call returns either a string (used as context) or a map[string]any holding a "context" key.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, prompt string) (any, error)
}

// ContextFunc is the body of a tool built with NewTool
type ContextFunc func(ctx context.Context, prompt string) (any, error)

// ToolFunc adapts a plain function to the Tool interface
type ToolFunc struct {
	name        string
	description string
	fn          ContextFunc
}

// NewTool creates a Tool from a function
func NewTool(name, description string, fn ContextFunc) *ToolFunc {
	return &ToolFunc{name: name, description: description, fn: fn}
}

func (t *ToolFunc) Name() string        { return t.name }
func (t *ToolFunc) Description() string { return t.description }

func (t *ToolFunc) Call(ctx context.Context, prompt string) (any, error) {
	return t.fn(ctx, prompt)
}

// ToolRouterConfig controls the single-token tool classification
type ToolRouterConfig struct {
	Prompt      string
	BiasWeight  int
	TokenOffset int
}

// DefaultToolRouterConfig returns the stock router configuration
func DefaultToolRouterConfig() ToolRouterConfig {
	return ToolRouterConfig{
		Prompt:      DefaultToolPrompt,
		BiasWeight:  DefaultToolBiasWeight,
		TokenOffset: DefaultToolTokenOffset,
	}
}

// Menu formats the numbered tool list into the classification prompt
func (c ToolRouterConfig) Menu(tools []Tool) string {
	lines := make([]string, len(tools))
	for i, tool := range tools {
		lines[i] = fmt.Sprintf("%d: %s", i+1, tool.Description())
	}
	return strings.ReplaceAll(c.Prompt, "{tools}", strings.Join(lines, "\n"))
}

// LogitBias biases the tokens for 0..n so the model can only answer with a tool index
func (c ToolRouterConfig) LogitBias(n int) map[string]int {
	bias := make(map[string]int, n+1)
	for token := c.TokenOffset; token <= c.TokenOffset+n; token++ {
		bias[fmt.Sprint(token)] = c.BiasWeight
	}
	return bias
}
