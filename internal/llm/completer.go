package llm

import (
	"context"
	"fmt"

	"github.com/fedutinova/xpb3parser/internal/config"
)

// Completer sends one system instruction and one user prompt to a hosted
// chat model at zero temperature and returns the first answer. It never retries.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (*Completion, error)
	Provider() string
}

type Completion struct {
	Content    string
	Model      string
	TokensUsed int
}

// NewCompleter builds the completion client selected by cfg.Provider. The
// result holds no per-request state and is shared by all requests.
func NewCompleter(cfg config.Config) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	case config.ProviderAnthropic:
		return NewAnthropicCompleter(cfg.AnthropicAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
