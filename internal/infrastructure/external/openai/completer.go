// Package openai adapts the language-model endpoint to port.ChatCompleter.
// It owns the fixed tool registry and the system instruction; the assistant
// engine never sees the wire format.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kovilapp/temple-admin/internal/application/port"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Completer implements port.ChatCompleter using the OpenAI chat API
type Completer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewCompleter creates a new chat completer. A zero maxTokens or timeout
// leaves the respective limit to the endpoint and the caller's context.
func NewCompleter(apiKey, model string, temperature float32, maxTokens int, timeout time.Duration, logger *zap.Logger) *Completer {
	return &Completer{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
		logger:      logger,
		now:         time.Now,
	}
}

// Complete sends the user's free text with the current date and the fixed
// tool registry. At most one tool call is surfaced: if the model returns
// several, only the first is used.
func (c *Completer) Complete(ctx context.Context, userText string) (*port.ChatResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Today is %s. User prompt: %q", c.now().Format("2006-01-02"), userText),
			},
		},
		Tools: toolRegistry(),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("Chat completion failed", zap.Error(err))
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from chat completion")
	}

	message := resp.Choices[0].Message

	result := &port.ChatResult{Text: message.Content}

	if len(message.ToolCalls) > 0 {
		call := message.ToolCalls[0]
		if len(message.ToolCalls) > 1 {
			c.logger.Warn("Model returned multiple tool calls, using the first",
				zap.Int("count", len(message.ToolCalls)))
		}
		result.Call = &port.ToolCall{
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		}
		c.logger.Debug("Tool call returned", zap.String("tool", call.Function.Name))
	}

	return result, nil
}

// Verify interface compliance
var _ port.ChatCompleter = (*Completer)(nil)
