// Package llm predicts the skills a task requires from its title, using a
// text-completion model cross-checked against historically similar tasks.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Completer is the text-completion oracle. Responses carry no guaranteed
// structure; callers must defensively extract what they need.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnthropicClient implements Completer over the Anthropic Messages API.
type AnthropicClient struct {
	inner anthropic.Client
	model anthropic.Model
}

var _ Completer = (*AnthropicClient)(nil)

// NewAnthropicClient creates a completion client. apiKey defaults to the
// ANTHROPIC_API_KEY env var; model defaults to Claude Sonnet.
func NewAnthropicClient(apiKey, model string) (*AnthropicClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	inner := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	m := anthropic.ModelClaudeSonnet4_5
	if model != "" {
		m = anthropic.Model(model)
	}

	return &AnthropicClient{inner: inner, model: m}, nil
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(1024),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
