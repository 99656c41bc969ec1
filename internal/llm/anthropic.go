package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/fedutinova/xpb3parser/internal/common"
)

const anthropicMaxTokens = 1024

type AnthropicCompleter struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicCompleter builds a Messages API client. SDK retries are
// disabled so each request makes exactly one call.
func NewAnthropicCompleter(apiKey, model string, opts ...option.RequestOption) *AnthropicCompleter {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	cl := anthropic.NewClient(opts...)
	return &AnthropicCompleter{client: &cl, model: model}
}

func (c *AnthropicCompleter) Provider() string { return "anthropic" }

func (c *AnthropicCompleter) Complete(ctx context.Context, system, prompt string) (*Completion, error) {
	slog.Info("sending request to Anthropic", "model", c.model, "prompt_length", len(prompt))

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(0),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		slog.Error("Anthropic API error", "error", err, "model", c.model)
		return nil, common.WrapModelCall(c.Provider(), err)
	}

	var b strings.Builder
	texts := 0
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
			texts++
		}
	}
	if texts == 0 {
		return nil, fmt.Errorf("%w: no text blocks from Anthropic", common.ErrModelResponse)
	}

	return &Completion{
		Content:    b.String(),
		Model:      string(msg.Model),
		TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
	}, nil
}
