package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/fedutinova/xpb3parser/internal/common"
)

type Client struct {
	completer Completer
	maxChars  int
}

type Result struct {
	Content          string
	Model            string
	TokensUsed       int
	ProcessingTimeMs int
	Fields           Fields
}

func NewClient(completer Completer, maxChars int) *Client {
	if maxChars <= 0 {
		maxChars = MaxTextChars
	}
	return &Client{
		completer: completer,
		maxChars:  maxChars,
	}
}

// ExtractFields asks the model for the six nota fields found in text. Empty
// text returns common.ErrEmptyText without calling the model. Content is the
// model's first answer, unmodified.
func (c *Client) ExtractFields(ctx context.Context, text string) (*Result, error) {
	if text == "" {
		return nil, common.ErrEmptyText
	}

	start := time.Now()
	prompt := BuildPrompt(text, c.maxChars)

	completion, err := c.completer.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	fields := ParseFields(completion.Content)
	processingTime := time.Since(start)

	slog.Info("received model response",
		"provider", c.completer.Provider(),
		"model", completion.Model,
		"tokens_used", completion.TokensUsed,
		"text_length", len(text),
		"response_length", len(completion.Content),
		"schema_valid", fields.Parsed(),
		"processing_time_ms", processingTime.Milliseconds())
	if fields.Err != nil {
		slog.Debug("model output is not a nota record", "error", fields.Err)
	}

	return &Result{
		Content:          completion.Content,
		Model:            completion.Model,
		TokensUsed:       completion.TokensUsed,
		ProcessingTimeMs: int(processingTime.Milliseconds()),
		Fields:           fields,
	}, nil
}
