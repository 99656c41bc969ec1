package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/sashabaranov/go-openai"

	"github.com/fedutinova/xpb3parser/internal/common"
)

// ChatClient is the subset of *openai.Client used here.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAICompleter struct {
	client ChatClient
	model  string
}

func NewOpenAICompleter(apiKey, baseURL, model string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// NewOpenAICompleterWithClient wires an existing chat client.
func NewOpenAICompleterWithClient(client ChatClient, model string) *OpenAICompleter {
	return &OpenAICompleter{client: client, model: model}
}

func (c *OpenAICompleter) Provider() string { return "openai" }

func (c *OpenAICompleter) Complete(ctx context.Context, system, prompt string) (*Completion, error) {
	slog.Info("sending request to OpenAI", "model", c.model, "prompt_length", len(prompt))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		// go-openai drops a zero temperature via omitempty, which the API reads as 1
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.Error("OpenAI API error", "error", err, "model", c.model)
		return nil, common.WrapModelCall(c.Provider(), err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices from OpenAI", common.ErrModelResponse)
	}

	return &Completion{
		Content:    resp.Choices[0].Message.Content,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
